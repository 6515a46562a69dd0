package models

import "time"

// Session is one dated meeting of a course. At most one session may exist
// per (course, date).
type Session struct {
	ID          string    `json:"id" validate:"required,uuid"`
	CourseID    string    `json:"course_id" validate:"required,uuid"`
	SessionDate time.Time `json:"session_date" validate:"required"`
	Topic       *string   `json:"topic,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DateString returns the session date in the form used by the API and exports.
func (s *Session) DateString() string {
	return s.SessionDate.Format("2006-01-02")
}
