package models

import "time"

// Student is a roster identity. FullName is the informal natural key used
// for deduplication; StudentID is an optional external identifier that is
// unique when present. UserID links the roster record to a login account,
// set once when the link is established.
type Student struct {
	ID        string    `json:"id" validate:"required,uuid"`
	FullName  string    `json:"full_name" validate:"required"`
	StudentID *string   `json:"student_id,omitempty"`
	Email     *string   `json:"email,omitempty" validate:"omitempty,email"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentRef is an unresolved student reference from a form or CSV row,
// fed to the roster reconciler.
type StudentRef struct {
	FullName  string `json:"full_name" validate:"required"`
	StudentID string `json:"student_id"`
	Email     string `json:"email" validate:"omitempty,email"`
}
