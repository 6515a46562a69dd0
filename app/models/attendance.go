package models

import "time"

// Attendance is one student's recorded status for one session. At most one
// record may exist per (session, student); a second write for the pair
// updates the existing record. The absence of a record scores as absent but
// is never stored as a row until the status is explicitly set.
type Attendance struct {
	ID        string           `json:"id" validate:"required,uuid"`
	SessionID string           `json:"session_id" validate:"required,uuid"`
	StudentID string           `json:"student_id" validate:"required,uuid"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     *string          `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Student   *Student         `json:"student,omitempty"`
}

// AttendanceEntry is one student's status in a batch marking request.
type AttendanceEntry struct {
	StudentID string           `json:"student_id" validate:"required,uuid"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     *string          `json:"notes,omitempty"`
}
