package models

import "time"

// Course is a class owned by exactly one teacher.
type Course struct {
	ID          string    `json:"id" validate:"required,uuid"`
	Name        string    `json:"name" validate:"required"`
	Code        *string   `json:"code,omitempty"`
	Description *string   `json:"description,omitempty"`
	TeacherID   string    `json:"teacher_id" validate:"required,uuid"`
	CreatedAt   time.Time `json:"created_at"`
	Teacher     *User     `json:"teacher,omitempty"`
}
