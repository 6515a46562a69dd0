package services

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// AttendancePercentage computes the weighted attendance percentage for one
// student across a set of sessions. Sessions with no record count as absent.
// The result keeps full precision; use RoundPercentage for display.
func AttendancePercentage(sessions []*models.Session, records map[string]*models.Attendance) float64 {
	if len(sessions) == 0 {
		return 0.0
	}

	total := 0.0
	for _, session := range sessions {
		if record, ok := records[session.ID]; ok {
			total += record.Status.Weight()
		}
	}
	return total / float64(len(sessions)) * 100
}

// RoundPercentage rounds a percentage to one decimal place for display.
func RoundPercentage(value float64) float64 {
	return math.Round(value*10) / 10
}

// AddSession creates a class meeting for a course. Each course may hold at
// most one session per date.
func AddSession(db *sql.DB, actor *models.User, courseID, date, topic string) (*models.Session, error) {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return nil, err
	}

	sessionDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}

	session := &models.Session{CourseID: course.ID, SessionDate: sessionDate}
	if topic != "" {
		session.Topic = &topic
	}

	if err := database.CreateSession(db, session); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("unique_session",
				fmt.Sprintf("%s already has a session on %s", course.Name, date))
		}
		return nil, apperrors.NewStoreError("create session", err)
	}
	return session, nil
}

// ListSessions returns a course's sessions in date order.
func ListSessions(db *sql.DB, actor *models.User, courseID string) ([]*models.Session, error) {
	if _, err := GetManagedCourse(db, actor, courseID); err != nil {
		return nil, err
	}

	sessions, err := database.GetSessionsByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("list sessions", err)
	}
	return sessions, nil
}

// RecordAttendance saves the attendance sheet for one session. Marking a
// student twice for the same session overwrites the earlier status rather
// than adding a second record.
func RecordAttendance(db *sql.DB, actor *models.User, sessionID string, entries []models.AttendanceEntry) error {
	session, err := database.GetSessionByID(db, sessionID)
	if err != nil {
		return apperrors.NewStoreError("load session", err)
	}
	if session == nil {
		return apperrors.NewNotFoundError("Session")
	}
	if _, err := GetManagedCourse(db, actor, session.CourseID); err != nil {
		return err
	}

	for _, entry := range entries {
		if _, ok := models.ParseAttendanceStatus(string(entry.Status)); !ok {
			return apperrors.NewValidationError(fmt.Sprintf("Invalid attendance status: %s", entry.Status))
		}
	}

	if err := database.SaveSessionAttendance(db, sessionID, entries); err != nil {
		return apperrors.NewStoreError("save attendance", err)
	}
	return nil
}

// SessionAttendance returns a session together with its recorded statuses,
// keyed by student ID. Students with no record yet are simply missing from
// the map.
func SessionAttendance(db *sql.DB, actor *models.User, sessionID string) (*models.Session, map[string]*models.Attendance, error) {
	session, err := database.GetSessionByID(db, sessionID)
	if err != nil {
		return nil, nil, apperrors.NewStoreError("load session", err)
	}
	if session == nil {
		return nil, nil, apperrors.NewNotFoundError("Session")
	}
	if _, err := GetManagedCourse(db, actor, session.CourseID); err != nil {
		return nil, nil, err
	}

	records, err := database.GetAttendanceBySession(db, sessionID)
	if err != nil {
		return nil, nil, apperrors.NewStoreError("load attendance", err)
	}
	return session, records, nil
}

// ComputeAttendancePercentage returns one student's display-rounded
// attendance percentage for a course. Teachers and admins may ask about any
// student on their courses; a student may only ask about themselves.
func ComputeAttendancePercentage(db *sql.DB, actor *models.User, courseID, studentID string) (float64, error) {
	course, err := database.GetCourseByID(db, courseID)
	if err != nil {
		return 0, apperrors.NewStoreError("load course", err)
	}
	if course == nil {
		return 0, apperrors.NewNotFoundError("Course")
	}

	if !actor.CanManageCourse(course) {
		linked, err := database.GetStudentByUserID(db, actor.ID)
		if err != nil {
			return 0, apperrors.NewStoreError("look up linked student", err)
		}
		if linked == nil || linked.ID != studentID {
			return 0, apperrors.NewAuthorizationError("You do not have access to this course")
		}
	}

	sessions, err := database.GetSessionsByCourse(db, courseID)
	if err != nil {
		return 0, apperrors.NewStoreError("list sessions", err)
	}
	records, err := database.GetStudentAttendanceByCourse(db, courseID, studentID)
	if err != nil {
		return 0, apperrors.NewStoreError("load attendance", err)
	}
	return RoundPercentage(AttendancePercentage(sessions, records)), nil
}

// GenerateCourseReport builds the full attendance report for a course.
func GenerateCourseReport(db *sql.DB, actor *models.User, courseID string) (*models.CourseReport, error) {
	course, err := GetManagedCourse(db, actor, courseID)
	if err != nil {
		return nil, err
	}

	roster, err := database.GetRosterByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("load roster", err)
	}
	sessions, err := database.GetSessionsByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("list sessions", err)
	}
	matrix, err := database.GetCourseAttendanceMatrix(db, courseID)
	if err != nil {
		return nil, apperrors.NewStoreError("load attendance", err)
	}
	return buildCourseReport(course, roster, sessions, matrix), nil
}

// buildCourseReport ranks students by attendance percentage, best first,
// ties broken by name. Ranking compares full-precision values so students
// that round to the same display value keep their true order.
func buildCourseReport(course *models.Course, roster []*models.RosterEntry, sessions []*models.Session, matrix map[string]map[string]*models.Attendance) *models.CourseReport {
	students := make([]*models.StudentAttendanceSummary, 0, len(roster))
	exact := make(map[string]float64, len(roster))

	for _, entry := range roster {
		records := matrix[entry.ID]
		summary := &models.StudentAttendanceSummary{
			StudentID: entry.ID,
			FullName:  entry.FullName,
		}
		if entry.StudentID != nil {
			summary.ExternalID = *entry.StudentID
		}

		for _, session := range sessions {
			record, ok := records[session.ID]
			if !ok {
				summary.AbsentCount++
				continue
			}
			switch record.Status {
			case models.Present:
				summary.PresentCount++
			case models.Late:
				summary.LateCount++
			case models.Excused:
				summary.ExcusedCount++
			default:
				summary.AbsentCount++
			}
		}

		percentage := AttendancePercentage(sessions, records)
		exact[entry.ID] = percentage
		summary.Percentage = RoundPercentage(percentage)
		students = append(students, summary)
	}

	sort.SliceStable(students, func(i, j int) bool {
		if exact[students[i].StudentID] != exact[students[j].StudentID] {
			return exact[students[i].StudentID] > exact[students[j].StudentID]
		}
		return students[i].FullName < students[j].FullName
	})

	return &models.CourseReport{
		Course:       course,
		SessionCount: len(sessions),
		Students:     students,
		GeneratedAt:  time.Now(),
	}
}
