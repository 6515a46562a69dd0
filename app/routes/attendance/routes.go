package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
)

func SetupAttendanceRoutes(app *fiber.App) {
	// Marking page
	pages := app.Group("/sessions")
	pages.Use(auth.AuthMiddleware)
	pages.Use(auth.RequireRole(models.RoleTeacher, models.RoleAdmin))
	pages.Get("/:id/attendance", TakeAttendancePage)

	// Session API, scoped to a course
	sessions := app.Group("/api/courses/:courseId/sessions")
	sessions.Use(auth.AuthMiddleware)
	sessions.Get("/", GetSessionsAPI)
	sessions.Post("/", CreateSessionAPI)

	// Attendance API, scoped to a session
	api := app.Group("/api/sessions/:id/attendance")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetSessionAttendanceAPI)
	api.Post("/", RecordAttendanceAPI)

	// Course-level attendance: CSV matrix and per-student percentage.
	// The literal export route must be registered before the param route.
	course := app.Group("/api/courses/:courseId/attendance")
	course.Use(auth.AuthMiddleware)
	course.Get("/export", ExportAttendanceAPI)
	course.Get("/:studentId", StudentAttendanceAPI)
}

// TakeAttendancePage renders the marking sheet for one session: the course
// roster with each student's current status, if any.
func TakeAttendancePage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := config.GetDB()

	session, records, err := services.SessionAttendance(db, user, c.Params("id"))
	if err != nil {
		return renderServiceError(c, err)
	}

	course, err := services.GetManagedCourse(db, user, session.CourseID)
	if err != nil {
		return renderServiceError(c, err)
	}
	roster, err := services.CourseRoster(db, user, session.CourseID)
	if err != nil {
		return renderServiceError(c, err)
	}

	// Create a map for quick lookup of attendance status
	attendanceMap := make(map[string]models.AttendanceStatus)
	for studentID, record := range records {
		attendanceMap[studentID] = record.Status
	}

	return c.Render("attendance/take", fiber.Map{
		"Title":         "Take Attendance - " + course.Name + " - Student Performance Tracker",
		"CurrentPage":   "courses",
		"course":        course,
		"session":       session,
		"date":          session.DateString(),
		"roster":        roster,
		"attendanceMap": attendanceMap,
		"user":          user,
	})
}
