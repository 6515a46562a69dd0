package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// CreateEnrollment inserts the (course, student) pair. A duplicate surfaces
// as a unique violation on the unique_enrollment constraint.
func CreateEnrollment(db Queryer, courseID, studentID string) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{CourseID: courseID, StudentID: studentID}
	query := `INSERT INTO enrollments (course_id, student_id, enrolled_at)
			  VALUES ($1, $2, NOW())
			  RETURNING id, enrolled_at`

	err := db.QueryRow(query, courseID, studentID).Scan(
		&enrollment.ID, &enrollment.EnrolledAt,
	)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func GetEnrollment(db Queryer, courseID, studentID string) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	query := `SELECT id, course_id, student_id, enrolled_at
			  FROM enrollments WHERE course_id = $1 AND student_id = $2`

	err := db.QueryRow(query, courseID, studentID).Scan(
		&enrollment.ID, &enrollment.CourseID, &enrollment.StudentID, &enrollment.EnrolledAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetRosterByCourse returns the enrolled students with their enrollment
// dates, ordered by name.
func GetRosterByCourse(db *sql.DB, courseID string) ([]*models.RosterEntry, error) {
	query := `SELECT s.id, s.full_name, s.student_id, s.email, s.user_id, s.created_at, e.enrolled_at
			  FROM enrollments e
			  JOIN students s ON e.student_id = s.id
			  WHERE e.course_id = $1
			  ORDER BY s.full_name`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := make([]*models.RosterEntry, 0)
	for rows.Next() {
		entry := &models.RosterEntry{}
		var externalID, email, userID sql.NullString
		err := rows.Scan(
			&entry.ID, &entry.FullName, &externalID, &email, &userID,
			&entry.CreatedAt, &entry.EnrolledAt,
		)
		if err != nil {
			return nil, err
		}

		if externalID.Valid {
			entry.StudentID = &externalID.String
		}
		if email.Valid {
			entry.Email = &email.String
		}
		if userID.Valid {
			entry.UserID = &userID.String
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// GetCoursesByStudent returns the courses a student is enrolled in, for the
// student dashboard.
func GetCoursesByStudent(db *sql.DB, studentID string) ([]*models.Course, error) {
	query := `SELECT c.id, c.name, c.code, c.description, c.teacher_id, c.created_at
			  FROM enrollments e
			  JOIN courses c ON e.course_id = c.id
			  WHERE e.student_id = $1
			  ORDER BY c.name`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(
			&course.ID, &course.Name, &course.Code, &course.Description,
			&course.TeacherID, &course.CreatedAt,
		)
		if err != nil {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}
