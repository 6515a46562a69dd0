package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// GradeInput carries one scored assignment for an enrolled student. MaxPoints
// defaults to 100 when zero; DueDate is optional and uses YYYY-MM-DD.
type GradeInput struct {
	StudentID      string
	AssignmentName string
	GradeValue     float64
	MaxPoints      float64
	AssignmentType string
	DueDate        string
	Notes          string
}

// AddGrade records a score for a student on a course. Grades are append-only:
// a corrected score is a new entry, and the old one stays until deleted.
func AddGrade(db *sql.DB, actor *models.User, courseID string, input GradeInput) (*models.Grade, error) {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.AssignmentName)
	if name == "" {
		return nil, apperrors.NewValidationError("Assignment name is required")
	}
	if input.GradeValue < 0 {
		return nil, apperrors.NewValidationError("Grade value cannot be negative")
	}
	maxPoints := input.MaxPoints
	if maxPoints == 0 {
		maxPoints = 100
	}
	if maxPoints < 0 {
		return nil, apperrors.NewValidationError("Max points cannot be negative")
	}

	student, err := database.GetStudentByID(db, input.StudentID)
	if err != nil {
		return nil, apperrors.NewStoreError("load student", err)
	}
	if student == nil {
		return nil, apperrors.NewNotFoundError("Student")
	}

	enrollment, err := database.GetEnrollment(db, course.ID, student.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("check enrollment", err)
	}
	if enrollment == nil {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s is not enrolled in %s", student.FullName, course.Name))
	}

	grade := &models.Grade{
		CourseID:       course.ID,
		StudentID:      student.ID,
		AssignmentName: name,
		GradeValue:     input.GradeValue,
		MaxPoints:      maxPoints,
	}
	if t := strings.TrimSpace(input.AssignmentType); t != "" {
		grade.AssignmentType = &t
	}
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid due date format. Use YYYY-MM-DD")
		}
		grade.DueDate = &due
	}
	if n := strings.TrimSpace(input.Notes); n != "" {
		grade.Notes = &n
	}

	if err := database.CreateGrade(db, grade); err != nil {
		return nil, apperrors.NewStoreError("create grade", err)
	}
	grade.Student = student
	return grade, nil
}

// CourseGrades returns every grade recorded for a course, grouped by student
// name order.
func CourseGrades(db *sql.DB, actor *models.User, courseID string) ([]*models.Grade, error) {
	if _, err := GetManagedCourse(db, actor, courseID); err != nil {
		return nil, err
	}

	grades, err := database.GetGradesByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("list grades", err)
	}
	return grades, nil
}

// DeleteGrade removes a single grade entry. Other grades for the same
// student and assignment are untouched.
func DeleteGrade(db *sql.DB, actor *models.User, gradeID string) error {
	grade, err := database.GetGradeByID(db, gradeID)
	if err != nil {
		return apperrors.NewStoreError("load grade", err)
	}
	if grade == nil {
		return apperrors.NewNotFoundError("Grade")
	}
	if _, err := GetManagedCourse(db, actor, grade.CourseID); err != nil {
		return err
	}

	deleted, err := database.DeleteGrade(db, gradeID)
	if err != nil {
		return apperrors.NewStoreError("delete grade", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFoundError("Grade")
	}
	return nil
}
