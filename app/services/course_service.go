package services

import (
	"database/sql"
	"strings"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// GetManagedCourse loads a course and checks the acting user may manage it.
// Teachers manage their own courses; admins manage all of them. Every
// course-scoped operation goes through this check first.
func GetManagedCourse(db *sql.DB, actor *models.User, courseID string) (*models.Course, error) {
	course, err := database.GetCourseByID(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("load course", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError("Course")
	}
	if !actor.CanManageCourse(course) {
		return nil, apperrors.NewAuthorizationError("You do not have access to this course")
	}
	return course, nil
}

// CreateCourse creates a course owned by the acting user.
func CreateCourse(db *sql.DB, actor *models.User, name, code, description string) (*models.Course, error) {
	if actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, apperrors.NewAuthorizationError("Only teachers can create courses")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Course name is required")
	}

	course := &models.Course{Name: name, TeacherID: actor.ID}
	if code = strings.TrimSpace(code); code != "" {
		course.Code = &code
	}
	if description = strings.TrimSpace(description); description != "" {
		course.Description = &description
	}

	if err := database.CreateCourse(db, course); err != nil {
		return nil, apperrors.NewStoreError("create course", err)
	}
	return course, nil
}

// ListCourses returns the courses the acting user manages, with student and
// session counts. Admins see every course.
func ListCourses(db *sql.DB, actor *models.User) ([]*models.CourseOverview, error) {
	var courses []*models.CourseOverview
	var err error

	if actor.Role == models.RoleAdmin {
		courses, err = database.GetAllCourses(db)
	} else {
		courses, err = database.GetCoursesByTeacher(db, actor.ID)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("list courses", err)
	}
	return courses, nil
}

// DeleteCourse removes a course together with its enrollments, sessions,
// attendance records and grades. Student records themselves are kept: they
// may be enrolled elsewhere.
func DeleteCourse(db *sql.DB, actor *models.User, courseID string) error {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return err
	}

	deleted, err := database.DeleteCourse(db, course.ID)
	if err != nil {
		return apperrors.NewStoreError("delete course", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFoundError("Course")
	}
	return nil
}
