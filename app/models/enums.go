package models

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// AttendanceWeights maps each status to its score for percentage computation.
// A session with no record counts as absent.
var AttendanceWeights = map[AttendanceStatus]float64{
	Present: 1.0,
	Late:    0.75,
	Excused: 0.5,
	Absent:  0.0,
}

// Weight returns the scoring weight for the status. Unknown statuses score 0.
func (s AttendanceStatus) Weight() float64 {
	return AttendanceWeights[s]
}

// Label returns the display form of the status, as used in exports.
func (s AttendanceStatus) Label() string {
	switch s {
	case Present:
		return "Present"
	case Late:
		return "Late"
	case Excused:
		return "Excused"
	case Absent:
		return "Absent"
	default:
		return string(s)
	}
}

// ParseAttendanceStatus converts user input to a status value.
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch s {
	case "present":
		return Present, true
	case "absent":
		return Absent, true
	case "late":
		return Late, true
	case "excused":
		return Excused, true
	default:
		return "", false
	}
}

// Role defines the account types a user can hold. A user's role never
// changes after the account is created.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole converts user input to a role value.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "teacher":
		return RoleTeacher, true
	case "student":
		return RoleStudent, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}
