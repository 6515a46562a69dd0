package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func CreateCourse(db *sql.DB, course *models.Course) error {
	query := `INSERT INTO courses (name, code, description, teacher_id, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, created_at`

	err := db.QueryRow(query, course.Name, course.Code, course.Description, course.TeacherID).Scan(
		&course.ID, &course.CreatedAt,
	)
	return err
}

func GetCourseByID(db *sql.DB, courseID string) (*models.Course, error) {
	course := &models.Course{}
	query := `SELECT id, name, code, description, teacher_id, created_at
			  FROM courses WHERE id = $1`

	err := db.QueryRow(query, courseID).Scan(
		&course.ID, &course.Name, &course.Code, &course.Description,
		&course.TeacherID, &course.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetCoursesByTeacher returns a teacher's courses with enrollment and
// session counts for list views.
func GetCoursesByTeacher(db *sql.DB, teacherID string) ([]*models.CourseOverview, error) {
	query := `SELECT c.id, c.name, c.code, c.description, c.teacher_id, c.created_at,
			  (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS student_count,
			  (SELECT COUNT(*) FROM sessions s WHERE s.course_id = c.id) AS session_count
			  FROM courses c
			  WHERE c.teacher_id = $1
			  ORDER BY c.created_at DESC`

	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.CourseOverview, 0)
	for rows.Next() {
		course := &models.CourseOverview{}
		err := rows.Scan(
			&course.ID, &course.Name, &course.Code, &course.Description,
			&course.TeacherID, &course.CreatedAt,
			&course.StudentCount, &course.SessionCount,
		)
		if err != nil {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// GetAllCourses returns every course with its teacher's name, for admin views.
func GetAllCourses(db *sql.DB) ([]*models.CourseOverview, error) {
	query := `SELECT c.id, c.name, c.code, c.description, c.teacher_id, c.created_at,
			  u.name,
			  (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS student_count,
			  (SELECT COUNT(*) FROM sessions s WHERE s.course_id = c.id) AS session_count
			  FROM courses c
			  JOIN users u ON c.teacher_id = u.id
			  ORDER BY c.created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.CourseOverview, 0)
	for rows.Next() {
		course := &models.CourseOverview{}
		var teacherName string
		err := rows.Scan(
			&course.ID, &course.Name, &course.Code, &course.Description,
			&course.TeacherID, &course.CreatedAt, &teacherName,
			&course.StudentCount, &course.SessionCount,
		)
		if err != nil {
			continue
		}
		course.Teacher = &models.User{ID: course.TeacherID, Name: teacherName}
		courses = append(courses, course)
	}
	return courses, nil
}

// DeleteCourse removes a course. Enrollments, sessions, attendance and
// grades under it go with it through the FK cascade.
func DeleteCourse(db *sql.DB, courseID string) (int64, error) {
	result, err := db.Exec(`DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
