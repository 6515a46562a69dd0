package models

import "time"

// Enrollment links one student to one course. At most one enrollment may
// exist per (course, student) pair.
type Enrollment struct {
	ID         string    `json:"id" validate:"required,uuid"`
	CourseID   string    `json:"course_id" validate:"required,uuid"`
	StudentID  string    `json:"student_id" validate:"required,uuid"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Student    *Student  `json:"student,omitempty"`
	Course     *Course   `json:"course,omitempty"`
}
