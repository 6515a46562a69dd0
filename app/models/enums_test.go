package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceWeights(t *testing.T) {
	assert.Equal(t, 1.0, Present.Weight())
	assert.Equal(t, 0.75, Late.Weight())
	assert.Equal(t, 0.5, Excused.Weight())
	assert.Equal(t, 0.0, Absent.Weight())
	assert.Equal(t, 0.0, AttendanceStatus("unknown").Weight())
}

func TestParseAttendanceStatus(t *testing.T) {
	status, ok := ParseAttendanceStatus("late")
	assert.True(t, ok)
	assert.Equal(t, Late, status)

	_, ok = ParseAttendanceStatus("tardy")
	assert.False(t, ok)

	// Parsing is strict about case; input is normalised upstream.
	_, ok = ParseAttendanceStatus("Present")
	assert.False(t, ok)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Present", Present.Label())
	assert.Equal(t, "Excused", Excused.Label())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("bursar")
	assert.False(t, ok)
}

func TestCanManageCourse(t *testing.T) {
	course := &Course{ID: "course-1", TeacherID: "teacher-1"}

	owner := &User{ID: "teacher-1", Role: RoleTeacher}
	otherTeacher := &User{ID: "teacher-2", Role: RoleTeacher}
	admin := &User{ID: "admin-1", Role: RoleAdmin}
	student := &User{ID: "student-1", Role: RoleStudent}

	assert.True(t, owner.CanManageCourse(course))
	assert.False(t, otherTeacher.CanManageCourse(course))
	assert.True(t, admin.CanManageCourse(course))
	assert.False(t, student.CanManageCourse(course))

	assert.False(t, owner.CanManageCourse(nil))
	assert.False(t, (*User)(nil).CanManageCourse(course))
}
