package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func testSession(id, date string) *models.Session {
	day, _ := time.Parse("2006-01-02", date)
	return &models.Session{ID: id, CourseID: "course-1", SessionDate: day}
}

func testRecord(sessionID, studentID string, status models.AttendanceStatus) *models.Attendance {
	return &models.Attendance{
		ID:        "rec-" + sessionID + "-" + studentID,
		SessionID: sessionID,
		StudentID: studentID,
		Status:    status,
	}
}

func TestAttendancePercentage(t *testing.T) {
	sessions := []*models.Session{
		testSession("s1", "2026-01-05"),
		testSession("s2", "2026-01-12"),
		testSession("s3", "2026-01-19"),
	}

	// Present + late + no record: (1.0 + 0.75 + 0) / 3
	records := map[string]*models.Attendance{
		"s1": testRecord("s1", "student-1", models.Present),
		"s2": testRecord("s2", "student-1", models.Late),
	}
	got := AttendancePercentage(sessions, records)
	assert.InDelta(t, 58.333, got, 0.001)
	assert.Equal(t, 58.3, RoundPercentage(got))
}

func TestAttendancePercentageNoSessions(t *testing.T) {
	got := AttendancePercentage(nil, map[string]*models.Attendance{})
	assert.Equal(t, 0.0, got)
}

func TestAttendancePercentageNoRecords(t *testing.T) {
	sessions := []*models.Session{
		testSession("s1", "2026-01-05"),
		testSession("s2", "2026-01-12"),
	}
	assert.Equal(t, 0.0, AttendancePercentage(sessions, nil))
}

func TestAttendancePercentageExplicitAbsentMatchesMissing(t *testing.T) {
	sessions := []*models.Session{
		testSession("s1", "2026-01-05"),
		testSession("s2", "2026-01-12"),
	}

	explicit := map[string]*models.Attendance{
		"s1": testRecord("s1", "student-1", models.Present),
		"s2": testRecord("s2", "student-1", models.Absent),
	}
	missing := map[string]*models.Attendance{
		"s1": testRecord("s1", "student-1", models.Present),
	}

	assert.Equal(t, AttendancePercentage(sessions, missing), AttendancePercentage(sessions, explicit))
}

func TestAttendancePercentageAllPresent(t *testing.T) {
	sessions := []*models.Session{
		testSession("s1", "2026-01-05"),
		testSession("s2", "2026-01-12"),
	}
	records := map[string]*models.Attendance{
		"s1": testRecord("s1", "student-1", models.Present),
		"s2": testRecord("s2", "student-1", models.Present),
	}
	assert.Equal(t, 100.0, AttendancePercentage(sessions, records))
}

func TestRoundPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{100, 100},
		{58.3333, 58.3},
		{66.6667, 66.7},
		{87.25, 87.3},
		{91.6666, 91.7},
		{37.5, 37.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundPercentage(tt.in), "RoundPercentage(%v)", tt.in)
	}
}

func TestBuildCourseReport(t *testing.T) {
	course := &models.Course{ID: "course-1", Name: "Intro to Go", TeacherID: "teacher-1"}
	externalID := "S-001"
	roster := []*models.RosterEntry{
		{Student: models.Student{ID: "st-alice", FullName: "Alice Zhang", StudentID: &externalID}},
		{Student: models.Student{ID: "st-ben", FullName: "Ben Ody"}},
		{Student: models.Student{ID: "st-cara", FullName: "Cara Day"}},
		{Student: models.Student{ID: "st-dan", FullName: "Dan West"}},
	}
	sessions := []*models.Session{
		testSession("s1", "2026-02-02"),
		testSession("s2", "2026-02-09"),
		testSession("s3", "2026-02-16"),
		testSession("s4", "2026-02-23"),
	}
	matrix := map[string]map[string]*models.Attendance{
		"st-alice": {
			"s1": testRecord("s1", "st-alice", models.Present),
			"s2": testRecord("s2", "st-alice", models.Present),
			"s3": testRecord("s3", "st-alice", models.Present),
			"s4": testRecord("s4", "st-alice", models.Late),
		},
		"st-dan": {
			"s1": testRecord("s1", "st-dan", models.Present),
			"s2": testRecord("s2", "st-dan", models.Excused),
			"s3": testRecord("s3", "st-dan", models.Absent),
		},
	}

	report := buildCourseReport(course, roster, sessions, matrix)

	assert.Equal(t, course, report.Course)
	assert.Equal(t, 4, report.SessionCount)
	assert.Len(t, report.Students, 4)
	assert.False(t, report.GeneratedAt.IsZero())

	// Sorted by percentage descending, zero-score tie broken by name.
	names := make([]string, 0, len(report.Students))
	for _, s := range report.Students {
		names = append(names, s.FullName)
	}
	assert.Equal(t, []string{"Alice Zhang", "Dan West", "Ben Ody", "Cara Day"}, names)

	alice := report.Students[0]
	assert.Equal(t, "S-001", alice.ExternalID)
	assert.Equal(t, 93.8, alice.Percentage) // (3 + 0.75) / 4, rounded
	assert.Equal(t, 3, alice.PresentCount)
	assert.Equal(t, 1, alice.LateCount)
	assert.Equal(t, 0, alice.ExcusedCount)
	assert.Equal(t, 0, alice.AbsentCount)

	// The unrecorded fourth session counts as absent alongside the explicit one.
	dan := report.Students[1]
	assert.Equal(t, 37.5, dan.Percentage)
	assert.Equal(t, 1, dan.PresentCount)
	assert.Equal(t, 1, dan.ExcusedCount)
	assert.Equal(t, 2, dan.AbsentCount)

	ben := report.Students[2]
	assert.Equal(t, 0.0, ben.Percentage)
	assert.Equal(t, 4, ben.AbsentCount)
	assert.Equal(t, "", ben.ExternalID)
}

func TestBuildCourseReportNoSessions(t *testing.T) {
	course := &models.Course{ID: "course-1", Name: "Intro to Go", TeacherID: "teacher-1"}
	roster := []*models.RosterEntry{
		{Student: models.Student{ID: "st-alice", FullName: "Alice Zhang"}},
	}

	report := buildCourseReport(course, roster, nil, nil)

	assert.Equal(t, 0, report.SessionCount)
	assert.Len(t, report.Students, 1)
	assert.Equal(t, 0.0, report.Students[0].Percentage)
	assert.Equal(t, 0, report.Students[0].AbsentCount)
}
