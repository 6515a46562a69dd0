//go:build integration

package services

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// These tests need a throwaway Postgres database:
//
//	TEST_DATABASE_URL=postgres://postgres@localhost:5432/tracker_test?sslmode=disable \
//	  go test -tags integration ./app/services/
//
// Every test truncates all tables, so never point this at real data.

var testDB *sql.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "TEST_DATABASE_URL is not set")
		os.Exit(1)
	}

	var err error
	testDB, err = sql.Open("postgres", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test database: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func resetTables(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(`TRUNCATE attendances, grades, enrollments, sessions, students, courses, user_sessions, users CASCADE`)
	require.NoError(t, err)
}

func createTeacher(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{Name: "Pat Teach", Role: models.RoleTeacher}
	require.NoError(t, database.CreateUser(testDB, user))
	return user
}

func createCourse(t *testing.T, teacher *models.User, name string) *models.Course {
	t.Helper()
	course, err := CreateCourse(testDB, teacher, name, "", "")
	require.NoError(t, err)
	return course
}

func createStudentLogin(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Role: models.RoleStudent}
	require.NoError(t, database.CreateUser(testDB, user))
	return user
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, testDB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestEnrollStudentFindOrCreate(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	goCourse := createCourse(t, teacher, "Intro to Go")
	dbCourse := createCourse(t, teacher, "Databases")

	enrollment, err := EnrollStudent(testDB, teacher, goCourse.ID, models.StudentRef{FullName: "Jane Doe", StudentID: "S-001"})
	require.NoError(t, err)
	require.NotNil(t, enrollment.Student)

	// The same name on a second course reuses the record instead of creating
	// a twin.
	second, err := EnrollStudent(testDB, teacher, dbCourse.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, enrollment.Student.ID, second.Student.ID)
	assert.Equal(t, 1, countRows(t, "students"))
	assert.Equal(t, 2, countRows(t, "enrollments"))
}

func TestEnrollStudentDuplicateWritesNothing(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)

	_, err = EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, 1, countRows(t, "enrollments"))
	assert.Equal(t, 1, countRows(t, "students"))
}

func TestEnrollStudentResolvesByExternalID(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	goCourse := createCourse(t, teacher, "Intro to Go")
	dbCourse := createCourse(t, teacher, "Databases")

	jane, err := EnrollStudent(testDB, teacher, goCourse.ID, models.StudentRef{FullName: "Jane Doe", StudentID: "S-001"})
	require.NoError(t, err)

	// An unknown name carrying a known identifier resolves to the existing
	// record; the stored name is never rewritten.
	resolved, err := EnrollStudent(testDB, teacher, dbCourse.ID, models.StudentRef{FullName: "Jane D.", StudentID: "S-001"})
	require.NoError(t, err)
	assert.Equal(t, jane.Student.ID, resolved.Student.ID)
	assert.Equal(t, "Jane Doe", resolved.Student.FullName)
	assert.Equal(t, 1, countRows(t, "students"))
}

func TestEnrollStudentForeignStudentID(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe", StudentID: "S-001"})
	require.NoError(t, err)
	_, err = EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "John Smith"})
	require.NoError(t, err)

	// John exists under his own name, so claiming Jane's identifier is a
	// conflict rather than a silent merge.
	_, err = EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "John Smith", StudentID: "S-001"})
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "S-001")
	assert.Equal(t, 2, countRows(t, "students"))
}

func TestImportRosterBucketsEveryRow(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe", StudentID: "S-001"})
	require.NoError(t, err)
	_, err = EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Lia Wong"})
	require.NoError(t, err)

	summary, err := ImportRoster(testDB, teacher, course.ID, []models.StudentRef{
		{FullName: "Ken Adams"},
		{FullName: "Jane Doe"},
		{FullName: "   "},
		{FullName: "Lia Wong", StudentID: "S-001"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "Lia Wong")

	// The conflicting row left nothing behind; only Ken was added.
	assert.Equal(t, 3, countRows(t, "students"))
	assert.Equal(t, 3, countRows(t, "enrollments"))
}

func TestImportRosterSkipsRowsAlreadyEnrolled(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Mia Patel"})
	require.NoError(t, err)

	summary, err := ImportRoster(testDB, teacher, course.ID, []models.StudentRef{
		{FullName: "Ken Adams"},
		{FullName: "Mia Patel"},
		{FullName: "Amy Chen"},
		{FullName: "Mia Patel"},
		{FullName: "Tom Reed"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, 4, countRows(t, "enrollments"))
}

func TestImportRosterIsRepeatable(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	refs := []models.StudentRef{
		{FullName: "Jane Doe", StudentID: "S-001"},
		{FullName: "Ken Adams"},
	}

	first, err := ImportRoster(testDB, teacher, course.ID, refs)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := ImportRoster(testDB, teacher, course.ID, refs)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 2, countRows(t, "enrollments"))
}

func TestRecordAttendanceUpserts(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)
	studentID := enrollment.Student.ID

	session, err := AddSession(testDB, teacher, course.ID, "2026-03-02", "")
	require.NoError(t, err)

	err = RecordAttendance(testDB, teacher, session.ID, []models.AttendanceEntry{
		{StudentID: studentID, Status: models.Present},
	})
	require.NoError(t, err)

	// Marking again replaces the status, it never grows a second row.
	err = RecordAttendance(testDB, teacher, session.ID, []models.AttendanceEntry{
		{StudentID: studentID, Status: models.Late},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, "attendances"))

	percentage, err := ComputeAttendancePercentage(testDB, teacher, course.ID, studentID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, percentage)
}

func TestGradesAppendAndDelete(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)
	studentID := enrollment.Student.ID

	first, err := AddGrade(testDB, teacher, course.ID, GradeInput{
		StudentID:      studentID,
		AssignmentName: "Quiz 1",
		GradeValue:     8,
		MaxPoints:      10,
	})
	require.NoError(t, err)

	// A second score under the same name is appended, never merged.
	second, err := AddGrade(testDB, teacher, course.ID, GradeInput{
		StudentID:      studentID,
		AssignmentName: "Quiz 1",
		GradeValue:     9,
		MaxPoints:      10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	grades, err := CourseGrades(testDB, teacher, course.ID)
	require.NoError(t, err)
	assert.Len(t, grades, 2)

	require.NoError(t, DeleteGrade(testDB, teacher, first.ID))

	grades, err = CourseGrades(testDB, teacher, course.ID)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, second.ID, grades[0].ID)

	err = DeleteGrade(testDB, teacher, first.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGradeMaxPointsDefaults(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)

	grade, err := AddGrade(testDB, teacher, course.ID, GradeInput{
		StudentID:      enrollment.Student.ID,
		AssignmentName: "Midterm",
		GradeValue:     87.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, grade.MaxPoints)

	_, err = AddGrade(testDB, teacher, course.ID, GradeInput{
		StudentID:      enrollment.Student.ID,
		AssignmentName: "Midterm",
		GradeValue:     -1,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddSessionDuplicateDate(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := AddSession(testDB, teacher, course.ID, "2026-03-02", "Pointers")
	require.NoError(t, err)

	_, err = AddSession(testDB, teacher, course.ID, "2026-03-02", "Slices")
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, 1, countRows(t, "sessions"))
}

func TestOwnershipEnforced(t *testing.T) {
	resetTables(t)
	owner := createTeacher(t)
	course := createCourse(t, owner, "Intro to Go")

	intruder := &models.User{Name: "Riva Lenz", Role: models.RoleTeacher}
	require.NoError(t, database.CreateUser(testDB, intruder))

	_, err := EnrollStudent(testDB, intruder, course.ID, models.StudentRef{FullName: "Jane Doe"})
	assert.True(t, apperrors.IsAuthorization(err))

	_, err = GenerateCourseReport(testDB, intruder, course.ID)
	assert.True(t, apperrors.IsAuthorization(err))

	admin := &models.User{Name: "Ada Root", Role: models.RoleAdmin}
	require.NoError(t, database.CreateUser(testDB, admin))

	_, err = GenerateCourseReport(testDB, admin, course.ID)
	assert.NoError(t, err)
}

func TestClaimRosterRecordOnFirstLogin(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)

	login := createStudentLogin(t, "Jane Doe")
	claimed, err := ClaimRosterRecord(testDB, login)
	require.NoError(t, err)
	assert.True(t, claimed)

	linked, err := database.GetStudentByUserID(testDB, login.ID)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, enrollment.Student.ID, linked.ID)

	// Claiming again is a no-op that still reports the link.
	claimed, err = ClaimRosterRecord(testDB, login)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestClaimRosterRecordNeverStealsALink(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)

	first := createStudentLogin(t, "Jane Doe")
	claimed, err := ClaimRosterRecord(testDB, first)
	require.NoError(t, err)
	require.True(t, claimed)

	// A second login under the same name finds no unlinked record: it stays
	// unlinked and the first login keeps the record.
	second := createStudentLogin(t, "Jane Doe")
	claimed, err = ClaimRosterRecord(testDB, second)
	require.NoError(t, err)
	assert.False(t, claimed)

	linked, err := database.GetStudentByUserID(testDB, first.ID)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, enrollment.Student.ID, linked.ID)

	stolen, err := database.GetStudentByUserID(testDB, second.ID)
	require.NoError(t, err)
	assert.Nil(t, stolen)
}

func TestLinkStudentAdminOnly(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	jane, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)
	ken, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Ken Adams"})
	require.NoError(t, err)

	janeLogin := createStudentLogin(t, "Jane Doe")
	kenLogin := createStudentLogin(t, "Ken Adams")
	admin := &models.User{Name: "Ada Root", Role: models.RoleAdmin}
	require.NoError(t, database.CreateUser(testDB, admin))

	// Only admins may set the link by hand.
	err = LinkStudent(testDB, teacher, jane.Student.ID, janeLogin.ID)
	assert.True(t, apperrors.IsAuthorization(err))

	require.NoError(t, LinkStudent(testDB, admin, jane.Student.ID, janeLogin.ID))

	// A linked record refuses a second account.
	err = LinkStudent(testDB, admin, jane.Student.ID, kenLogin.ID)
	assert.True(t, apperrors.IsConflict(err))

	// An account attached to one record cannot take another.
	err = LinkStudent(testDB, admin, ken.Student.ID, janeLogin.ID)
	assert.True(t, apperrors.IsConflict(err))

	require.NoError(t, LinkStudent(testDB, admin, ken.Student.ID, kenLogin.ID))
}

func TestStudentDashboardRequiresLink(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	_, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)

	// A login whose name matches no roster record claims nothing and sees an
	// explicit unlinked state, never someone else's data.
	login := createStudentLogin(t, "Janet Doe")
	claimed, err := ClaimRosterRecord(testDB, login)
	require.NoError(t, err)
	assert.False(t, claimed)

	board, err := StudentDashboard(testDB, login)
	require.NoError(t, err)
	assert.False(t, board.Linked)
	assert.Nil(t, board.Student)
	assert.Empty(t, board.Courses)

	_, err = StudentDashboard(testDB, teacher)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestStudentDashboardLinkedPercentages(t *testing.T) {
	resetTables(t)
	teacher := createTeacher(t)
	course := createCourse(t, teacher, "Intro to Go")

	enrollment, err := EnrollStudent(testDB, teacher, course.ID, models.StudentRef{FullName: "Jane Doe"})
	require.NoError(t, err)
	studentID := enrollment.Student.ID

	first, err := AddSession(testDB, teacher, course.ID, "2026-03-02", "")
	require.NoError(t, err)
	second, err := AddSession(testDB, teacher, course.ID, "2026-03-09", "")
	require.NoError(t, err)
	_, err = AddSession(testDB, teacher, course.ID, "2026-03-16", "")
	require.NoError(t, err)

	err = RecordAttendance(testDB, teacher, first.ID, []models.AttendanceEntry{
		{StudentID: studentID, Status: models.Present},
	})
	require.NoError(t, err)
	err = RecordAttendance(testDB, teacher, second.ID, []models.AttendanceEntry{
		{StudentID: studentID, Status: models.Late},
	})
	require.NoError(t, err)

	_, err = AddGrade(testDB, teacher, course.ID, GradeInput{
		StudentID:      studentID,
		AssignmentName: "Quiz 1",
		GradeValue:     8,
		MaxPoints:      10,
	})
	require.NoError(t, err)

	login := createStudentLogin(t, "Jane Doe")
	claimed, err := ClaimRosterRecord(testDB, login)
	require.NoError(t, err)
	require.True(t, claimed)

	// Present, Late and one unmarked session over 3 held: (1.0+0.75+0)/3.
	board, err := StudentDashboard(testDB, login)
	require.NoError(t, err)
	assert.True(t, board.Linked)
	require.NotNil(t, board.Student)
	assert.Equal(t, studentID, board.Student.ID)
	require.Len(t, board.Courses, 1)
	assert.Equal(t, course.ID, board.Courses[0].Course.ID)
	assert.Equal(t, 58.3, board.Courses[0].Percentage)
	assert.Len(t, board.Courses[0].Grades, 1)
}
