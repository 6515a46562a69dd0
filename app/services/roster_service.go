package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

type rowOutcome int

const (
	rowImported rowOutcome = iota
	rowSkipped
)

// resolveExisting decides which existing student record a reference points
// at. The full-name match wins; the external ID is only consulted when the
// name finds nothing, or to detect that the ID already belongs to someone
// else. A nil student with nil error means no record matched and a new one
// should be created.
func resolveExisting(byName, byExternalID *models.Student, externalID string) (*models.Student, error) {
	if byName != nil {
		if externalID == "" || byExternalID == nil || byExternalID.ID == byName.ID {
			return byName, nil
		}
		return nil, apperrors.NewConflictError("students_student_id_key",
			fmt.Sprintf("Student ID %s already belongs to %s", externalID, byExternalID.FullName))
	}
	if byExternalID != nil {
		return byExternalID, nil
	}
	return nil, nil
}

// ResolveStudent finds the student record a reference describes, creating
// one when nothing matches. The second return value reports whether a new
// record was created.
func ResolveStudent(db database.Queryer, ref models.StudentRef) (*models.Student, bool, error) {
	fullName := strings.TrimSpace(ref.FullName)
	if fullName == "" {
		return nil, false, apperrors.NewValidationError("Full name is required")
	}

	byName, err := database.GetStudentByFullName(db, fullName)
	if err != nil {
		return nil, false, apperrors.NewStoreError("look up student by name", err)
	}

	externalID := strings.TrimSpace(ref.StudentID)
	var byExternalID *models.Student
	if externalID != "" {
		byExternalID, err = database.GetStudentByExternalID(db, externalID)
		if err != nil {
			return nil, false, apperrors.NewStoreError("look up student by student ID", err)
		}
	}

	existing, err := resolveExisting(byName, byExternalID, externalID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	student := &models.Student{FullName: fullName}
	if externalID != "" {
		student.StudentID = &externalID
	}
	if email := strings.TrimSpace(ref.Email); email != "" {
		student.Email = &email
	}

	if err := database.CreateStudent(db, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, false, apperrors.NewConflictError(database.ViolatedConstraint(err),
				fmt.Sprintf("Student ID %s is already taken", externalID))
		}
		return nil, false, apperrors.NewStoreError("create student", err)
	}
	return student, true, nil
}

// EnrollStudent adds one student to a course roster, creating the student
// record if needed. Enrolling a student who is already on the roster is
// refused and nothing is written.
func EnrollStudent(db *sql.DB, actor *models.User, courseID string, ref models.StudentRef) (*models.Enrollment, error) {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, apperrors.NewStoreError("begin enrollment", err)
	}
	defer tx.Rollback()

	student, _, err := ResolveStudent(tx, ref)
	if err != nil {
		return nil, err
	}

	existing, err := database.GetEnrollment(tx, course.ID, student.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("check enrollment", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("unique_enrollment",
			fmt.Sprintf("%s is already enrolled in %s", student.FullName, course.Name))
	}

	enrollment, err := database.CreateEnrollment(tx, course.ID, student.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("unique_enrollment",
				fmt.Sprintf("%s is already enrolled in %s", student.FullName, course.Name))
		}
		return nil, apperrors.NewStoreError("create enrollment", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewStoreError("commit enrollment", err)
	}
	enrollment.Student = student
	return enrollment, nil
}

// ImportRoster enrolls a batch of students one row at a time. Rows that are
// already enrolled are skipped, rows that fail are reported, and neither
// stops the remaining rows.
func ImportRoster(db *sql.DB, actor *models.User, courseID string, refs []models.StudentRef) (*models.ImportSummary, error) {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return nil, err
	}

	summary := &models.ImportSummary{Errors: make([]string, 0)}
	for i, ref := range refs {
		if strings.TrimSpace(ref.FullName) == "" {
			summary.Skipped++
			continue
		}

		outcome, err := importRosterRow(db, course.ID, ref)
		if err != nil {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d (%s): %v", i+1, strings.TrimSpace(ref.FullName), err))
			continue
		}
		if outcome == rowImported {
			summary.Imported++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

// importRosterRow resolves and enrolls one student inside its own
// transaction, so a failure rolls back that row alone.
func importRosterRow(db *sql.DB, courseID string, ref models.StudentRef) (rowOutcome, error) {
	tx, err := db.Begin()
	if err != nil {
		return rowSkipped, apperrors.NewStoreError("begin import row", err)
	}
	defer tx.Rollback()

	student, _, err := ResolveStudent(tx, ref)
	if err != nil {
		return rowSkipped, err
	}

	existing, err := database.GetEnrollment(tx, courseID, student.ID)
	if err != nil {
		return rowSkipped, apperrors.NewStoreError("check enrollment", err)
	}
	if existing != nil {
		return rowSkipped, nil
	}

	if _, err := database.CreateEnrollment(tx, courseID, student.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return rowSkipped, nil
		}
		return rowSkipped, apperrors.NewStoreError("create enrollment", err)
	}

	if err := tx.Commit(); err != nil {
		return rowSkipped, apperrors.NewStoreError("commit import row", err)
	}
	return rowImported, nil
}

// CourseRoster returns a course's enrolled students in name order.
func CourseRoster(db *sql.DB, actor *models.User, courseID string) ([]*models.RosterEntry, error) {
	if _, err := GetManagedCourse(db, actor, courseID); err != nil {
		return nil, err
	}

	roster, err := database.GetRosterByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("load roster", err)
	}
	return roster, nil
}
