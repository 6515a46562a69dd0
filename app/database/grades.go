package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// CreateGrade appends a grade row. Grades have no natural key: repeating an
// assignment name for the same student adds another row.
func CreateGrade(db *sql.DB, grade *models.Grade) error {
	query := `INSERT INTO grades (course_id, student_id, assignment_name, grade_value, max_points,
			  assignment_type, due_date, notes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		grade.CourseID, grade.StudentID, grade.AssignmentName, grade.GradeValue, grade.MaxPoints,
		grade.AssignmentType, grade.DueDate, grade.Notes,
	).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	return err
}

func GetGradeByID(db *sql.DB, gradeID string) (*models.Grade, error) {
	grade := &models.Grade{}
	query := `SELECT id, course_id, student_id, assignment_name, grade_value, max_points,
			  assignment_type, due_date, notes, created_at, updated_at
			  FROM grades WHERE id = $1`

	err := db.QueryRow(query, gradeID).Scan(
		&grade.ID, &grade.CourseID, &grade.StudentID, &grade.AssignmentName,
		&grade.GradeValue, &grade.MaxPoints, &grade.AssignmentType,
		&grade.DueDate, &grade.Notes, &grade.CreatedAt, &grade.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return grade, nil
}

// GetGradesByCourse returns all grades in a course with student names,
// ordered by student and entry time.
func GetGradesByCourse(db *sql.DB, courseID string) ([]*models.Grade, error) {
	query := `SELECT g.id, g.course_id, g.student_id, g.assignment_name, g.grade_value, g.max_points,
			  g.assignment_type, g.due_date, g.notes, g.created_at, g.updated_at,
			  s.full_name
			  FROM grades g
			  JOIN students s ON g.student_id = s.id
			  WHERE g.course_id = $1
			  ORDER BY s.full_name, g.created_at`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := make([]*models.Grade, 0)
	for rows.Next() {
		grade := &models.Grade{}
		var studentName string
		err := rows.Scan(
			&grade.ID, &grade.CourseID, &grade.StudentID, &grade.AssignmentName,
			&grade.GradeValue, &grade.MaxPoints, &grade.AssignmentType,
			&grade.DueDate, &grade.Notes, &grade.CreatedAt, &grade.UpdatedAt,
			&studentName,
		)
		if err != nil {
			continue
		}

		grade.Student = &models.Student{ID: grade.StudentID, FullName: studentName}
		grades = append(grades, grade)
	}
	return grades, nil
}

func GetGradesByStudentAndCourse(db *sql.DB, courseID, studentID string) ([]*models.Grade, error) {
	query := `SELECT id, course_id, student_id, assignment_name, grade_value, max_points,
			  assignment_type, due_date, notes, created_at, updated_at
			  FROM grades
			  WHERE course_id = $1 AND student_id = $2
			  ORDER BY created_at`

	rows, err := db.Query(query, courseID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := make([]*models.Grade, 0)
	for rows.Next() {
		grade := &models.Grade{}
		err := rows.Scan(
			&grade.ID, &grade.CourseID, &grade.StudentID, &grade.AssignmentName,
			&grade.GradeValue, &grade.MaxPoints, &grade.AssignmentType,
			&grade.DueDate, &grade.Notes, &grade.CreatedAt, &grade.UpdatedAt,
		)
		if err != nil {
			continue
		}
		grades = append(grades, grade)
	}
	return grades, nil
}

// DeleteGrade removes exactly one grade row and reports whether it existed.
func DeleteGrade(db *sql.DB, gradeID string) (int64, error) {
	result, err := db.Exec(`DELETE FROM grades WHERE id = $1`, gradeID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
