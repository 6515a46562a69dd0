package models

import "time"

// Grade is one scored assignment for one student in one course. There is no
// uniqueness constraint: a student may have any number of grade rows,
// including several with the same assignment name. Writes always append.
type Grade struct {
	ID             string     `json:"id" validate:"required,uuid"`
	CourseID       string     `json:"course_id" validate:"required,uuid"`
	StudentID      string     `json:"student_id" validate:"required,uuid"`
	AssignmentName string     `json:"assignment_name" validate:"required"`
	GradeValue     float64    `json:"grade_value" validate:"gte=0"`
	MaxPoints      float64    `json:"max_points" validate:"gt=0"`
	AssignmentType *string    `json:"assignment_type,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Student        *Student   `json:"student,omitempty"`
}
