package grades

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
)

func SetupGradesRoutes(app *fiber.App) {
	// Grades API, scoped to a course
	api := app.Group("/api/courses/:courseId/grades")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetGradesAPI)
	api.Post("/", CreateGradeAPI)

	// Deletion targets a single grade row
	single := app.Group("/api/grades")
	single.Use(auth.AuthMiddleware)
	single.Delete("/:id", DeleteGradeAPI)
}
