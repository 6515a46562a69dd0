package models

import "time"

type User struct {
	ID           string     `json:"id" validate:"required,uuid"`
	Name         string     `json:"name" validate:"required"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role" validate:"required,oneof=teacher student admin"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CanManageCourse reports whether the user may mutate or report on the
// course. Teachers act only on their own courses; admins act on any.
func (u *User) CanManageCourse(c *Course) bool {
	if u == nil || c == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleTeacher && c.TeacherID == u.ID
}

// UserSession is a server-side record of one login, used for auditing and
// cleaned up by the scheduler once expired.
type UserSession struct {
	ID        string    `json:"id" validate:"required,uuid"`
	UserID    string    `json:"user_id" validate:"required,uuid"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"user,omitempty"`
}
