package attendance

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/validation"
)

func GetSessionsAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	sessions, err := services.ListSessions(config.GetDB(), user, c.Params("courseId"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func CreateSessionAPI(c *fiber.Ctx) error {
	type CreateSessionRequest struct {
		SessionDate string `json:"session_date" validate:"required"`
		Topic       string `json:"topic"`
	}

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	session, err := services.AddSession(config.GetDB(), user, c.Params("courseId"), req.SessionDate, req.Topic)
	if err != nil {
		return auth.APIError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Session created successfully",
		"session": session,
	})
}

func GetSessionAttendanceAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	session, records, err := services.SessionAttendance(config.GetDB(), user, c.Params("id"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{
		"session":    session,
		"attendance": records,
	})
}

// RecordAttendanceAPI saves a batch of statuses for one session. Re-marking
// a student replaces their earlier status.
func RecordAttendanceAPI(c *fiber.Ctx) error {
	type RecordAttendanceRequest struct {
		Entries []models.AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
	}

	var req RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	if err := services.RecordAttendance(config.GetDB(), user, c.Params("id"), req.Entries); err != nil {
		return auth.APIError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Attendance recorded for %d students", len(req.Entries)),
	})
}

// StudentAttendanceAPI returns one student's attendance percentage for a
// course, rounded for display.
func StudentAttendanceAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	percentage, err := services.ComputeAttendancePercentage(config.GetDB(), user, c.Params("courseId"), c.Params("studentId"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{
		"course_id":             c.Params("courseId"),
		"student_id":            c.Params("studentId"),
		"attendance_percentage": percentage,
	})
}

// ExportAttendanceAPI downloads the full attendance grid for a course as CSV.
func ExportAttendanceAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := config.GetDB()
	courseID := c.Params("courseId")

	course, err := services.GetManagedCourse(db, user, courseID)
	if err != nil {
		return auth.APIError(c, err)
	}
	roster, err := services.CourseRoster(db, user, courseID)
	if err != nil {
		return auth.APIError(c, err)
	}
	sessions, err := services.ListSessions(db, user, courseID)
	if err != nil {
		return auth.APIError(c, err)
	}
	matrix, err := database.GetCourseAttendanceMatrix(db, courseID)
	if err != nil {
		return auth.APIError(c, apperrors.NewStoreError("load attendance", err))
	}

	buf, err := services.BuildAttendanceMatrixCSV(roster, sessions, matrix)
	if err != nil {
		return auth.APIError(c, err)
	}

	filename := services.ExportFilename("attendance", course.Name, "csv")
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// renderServiceError maps a service error onto the web error page.
func renderServiceError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	title := "An Error Occurred"
	message := err.Error()
	if status == 500 {
		title = "Server Error"
		message = "We're experiencing technical difficulties. Please try again later."
	}

	return c.Status(status).Render("error", fiber.Map{
		"Title":        "Error - Student Performance Tracker",
		"CurrentPage":  "courses",
		"ErrorCode":    status,
		"ErrorTitle":   title,
		"ErrorMessage": message,
		"ShowRetry":    status == 500,
		"user":         c.Locals("user"),
	})
}
