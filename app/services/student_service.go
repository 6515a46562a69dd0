package services

import (
	"database/sql"
	"fmt"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// ClaimRosterRecord links a student login to the unclaimed roster record
// bearing the same name, the first time that student signs in. Returns
// whether a link now exists.
func ClaimRosterRecord(db *sql.DB, user *models.User) (bool, error) {
	if user.Role != models.RoleStudent {
		return false, nil
	}

	linked, err := database.GetStudentByUserID(db, user.ID)
	if err != nil {
		return false, apperrors.NewStoreError("look up linked student", err)
	}
	if linked != nil {
		return true, nil
	}

	unlinked, err := database.GetUnlinkedStudentByFullName(db, user.Name)
	if err != nil {
		return false, apperrors.NewStoreError("look up roster record", err)
	}
	if unlinked == nil {
		return false, nil
	}

	claimed, err := database.LinkStudentToUser(db, unlinked.ID, user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}
		return false, apperrors.NewStoreError("link roster record", err)
	}
	return claimed, nil
}

// LinkStudent attaches a login account to a roster record by hand, for the
// cases the automatic claim at sign-in cannot match.
func LinkStudent(db *sql.DB, actor *models.User, studentID, userID string) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewAuthorizationError("Only admins can link students to accounts")
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return apperrors.NewStoreError("load student", err)
	}
	if student == nil {
		return apperrors.NewNotFoundError("Student")
	}
	if student.UserID != nil {
		return apperrors.NewConflictError("students_user_id_key",
			fmt.Sprintf("%s is already linked to an account", student.FullName))
	}

	user, err := database.GetUserByID(db, userID)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError("User")
	}
	if err != nil {
		return apperrors.NewStoreError("load user", err)
	}
	if user.Role != models.RoleStudent {
		return apperrors.NewValidationError("Only student accounts can be linked to roster records")
	}

	claimed, err := database.LinkStudentToUser(db, student.ID, user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.NewConflictError("students_user_id_key",
				"That account is already linked to another student")
		}
		return apperrors.NewStoreError("link roster record", err)
	}
	if !claimed {
		return apperrors.NewConflictError("students_user_id_key",
			fmt.Sprintf("%s is already linked to an account", student.FullName))
	}
	return nil
}

// StudentDashboard assembles the signed-in student's view: their linked
// roster record with attendance percentages and grades per enrolled course.
// A login with no roster record yet gets an empty, unlinked dashboard.
func StudentDashboard(db *sql.DB, actor *models.User) (*models.StudentDashboard, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewAuthorizationError("The student dashboard is only available to students")
	}

	dashboard := &models.StudentDashboard{Courses: make([]*models.StudentCourseSummary, 0)}

	student, err := database.GetStudentByUserID(db, actor.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("look up linked student", err)
	}
	if student == nil {
		return dashboard, nil
	}
	dashboard.Student = student
	dashboard.Linked = true

	courses, err := database.GetCoursesByStudent(db, student.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("list enrolled courses", err)
	}

	for _, course := range courses {
		sessions, err := database.GetSessionsByCourse(db, course.ID)
		if err != nil {
			return nil, apperrors.NewStoreError("list sessions", err)
		}
		records, err := database.GetStudentAttendanceByCourse(db, course.ID, student.ID)
		if err != nil {
			return nil, apperrors.NewStoreError("load attendance", err)
		}
		grades, err := database.GetGradesByStudentAndCourse(db, course.ID, student.ID)
		if err != nil {
			return nil, apperrors.NewStoreError("list grades", err)
		}

		dashboard.Courses = append(dashboard.Courses, &models.StudentCourseSummary{
			Course:     course,
			Percentage: RoundPercentage(AttendancePercentage(sessions, records)),
			Grades:     grades,
		})
	}
	return dashboard, nil
}
