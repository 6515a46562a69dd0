package courses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
)

func SetupCoursesRoutes(app *fiber.App) {
	courses := app.Group("/courses")
	courses.Use(auth.AuthMiddleware)
	courses.Use(auth.RequireRole(models.RoleTeacher, models.RoleAdmin))

	// Routes
	courses.Get("/", CoursesPage)
	courses.Get("/:id", CourseDetailPage)
	courses.Get("/:id/report", CourseReportPage)

	// API routes
	api := app.Group("/api/courses")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetCoursesAPI)
	api.Post("/", CreateCourseAPI)
	api.Get("/:id", GetCourseAPI)
	api.Delete("/:id", DeleteCourseAPI)
}

func CoursesPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	overviews, err := services.ListCourses(config.GetDB(), user)
	if err != nil {
		return c.Status(500).Render("error", fiber.Map{
			"Title":        "Error - Student Performance Tracker",
			"CurrentPage":  "courses",
			"ErrorCode":    "500",
			"ErrorTitle":   "Database Error",
			"ErrorMessage": "Failed to load courses. Please try again later.",
			"ShowRetry":    true,
			"user":         user,
		})
	}

	return c.Render("courses/index", fiber.Map{
		"Title":       "Courses - Student Performance Tracker",
		"CurrentPage": "courses",
		"courses":     overviews,
		"user":        user,
	})
}

func CourseDetailPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := config.GetDB()
	courseID := c.Params("id")

	course, err := services.GetManagedCourse(db, user, courseID)
	if err != nil {
		return renderServiceError(c, err, "courses")
	}

	roster, err := services.CourseRoster(db, user, courseID)
	if err != nil {
		return renderServiceError(c, err, "courses")
	}
	sessions, err := services.ListSessions(db, user, courseID)
	if err != nil {
		return renderServiceError(c, err, "courses")
	}
	grades, err := services.CourseGrades(db, user, courseID)
	if err != nil {
		return renderServiceError(c, err, "courses")
	}

	return c.Render("courses/detail", fiber.Map{
		"Title":       course.Name + " - Student Performance Tracker",
		"CurrentPage": "courses",
		"course":      course,
		"roster":      roster,
		"sessions":    sessions,
		"grades":      grades,
		"user":        user,
	})
}

func CourseReportPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	report, err := services.GenerateCourseReport(config.GetDB(), user, c.Params("id"))
	if err != nil {
		return renderServiceError(c, err, "courses")
	}

	return c.Render("courses/report", fiber.Map{
		"Title":       report.Course.Name + " Report - Student Performance Tracker",
		"CurrentPage": "courses",
		"report":      report,
		"user":        user,
	})
}
