package models

import "time"

// RosterEntry extends a student with their enrollment date for roster views
// and the roster CSV export.
type RosterEntry struct {
	Student
	EnrolledAt time.Time `json:"enrolled_at"`
}

// CourseOverview extends a course with counts for list views.
type CourseOverview struct {
	Course
	StudentCount int `json:"student_count"`
	SessionCount int `json:"session_count"`
}

// StudentAttendanceSummary is one row of a course attendance report.
// Percentage is rounded to one decimal for display.
type StudentAttendanceSummary struct {
	StudentID    string  `json:"student_id"`
	FullName     string  `json:"full_name"`
	ExternalID   string  `json:"external_id,omitempty"`
	Percentage   float64 `json:"attendance_percentage"`
	PresentCount int     `json:"present_count"`
	LateCount    int     `json:"late_count"`
	ExcusedCount int     `json:"excused_count"`
	AbsentCount  int     `json:"absent_count"`
}

// CourseReport is the full attendance report for a course, sorted by
// percentage descending.
type CourseReport struct {
	Course       *Course                     `json:"course"`
	SessionCount int                         `json:"session_count"`
	Students     []*StudentAttendanceSummary `json:"students"`
	GeneratedAt  time.Time                   `json:"generated_at"`
}

// ImportSummary is the outcome of a bulk roster import. The import itself
// never fails as a whole: every row lands in exactly one of these buckets.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// StudentCourseSummary is one course on a student's own dashboard.
type StudentCourseSummary struct {
	Course     *Course  `json:"course"`
	Percentage float64  `json:"attendance_percentage"`
	Grades     []*Grade `json:"grades"`
}

// StudentDashboard is what a logged-in student sees: their linked roster
// record and a summary per enrolled course.
type StudentDashboard struct {
	Student *Student                `json:"student"`
	Linked  bool                    `json:"linked"`
	Courses []*StudentCourseSummary `json:"courses"`
}

// TeacherDashboardStats summarises a teacher's courses for their home page.
type TeacherDashboardStats struct {
	TotalCourses  int               `json:"total_courses"`
	TotalStudents int               `json:"total_students"`
	TotalSessions int               `json:"total_sessions"`
	Courses       []*CourseOverview `json:"courses"`
}
