package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// GetTeacherDashboardStats returns the headline numbers and course list for
// a teacher's home page.
func GetTeacherDashboardStats(db *sql.DB, teacherID string) (*models.TeacherDashboardStats, error) {
	stats := &models.TeacherDashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM courses WHERE teacher_id = $1`, teacherID).Scan(&stats.TotalCourses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT e.student_id)
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE c.teacher_id = $1
	`, teacherID).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM sessions s
		JOIN courses c ON s.course_id = c.id
		WHERE c.teacher_id = $1
	`, teacherID).Scan(&stats.TotalSessions)
	if err != nil {
		return nil, err
	}

	courses, err := GetCoursesByTeacher(db, teacherID)
	if err != nil {
		return nil, err
	}
	stats.Courses = courses

	return stats, nil
}

// GetAdminDashboardStats returns the same headline numbers across every
// course in the system.
func GetAdminDashboardStats(db *sql.DB) (*models.TeacherDashboardStats, error) {
	stats := &models.TeacherDashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&stats.TotalCourses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(DISTINCT student_id) FROM enrollments`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&stats.TotalSessions)
	if err != nil {
		return nil, err
	}

	courses, err := GetAllCourses(db)
	if err != nil {
		return nil, err
	}
	stats.Courses = courses

	return stats, nil
}
