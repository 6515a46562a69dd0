package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	// Roster API, scoped to a course
	api := app.Group("/api/courses/:courseId/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetRosterAPI)           // Get course roster
	api.Post("/", EnrollStudentAPI)      // Enroll one student
	api.Post("/import", ImportRosterAPI) // Bulk import from CSV
	api.Get("/export", ExportRosterAPI)  // Download roster as CSV

	// Account linking, admin only
	link := app.Group("/api/students")
	link.Use(auth.AuthMiddleware)
	link.Post("/:id/link", auth.RequireRole(models.RoleAdmin), LinkStudentAPI)
}
