package reports

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
)

func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/courses/:courseId/report")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetCourseReportAPI)
	api.Get("/export", ExportCourseReportAPI)
}

func GetCourseReportAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	report, err := services.GenerateCourseReport(config.GetDB(), user, c.Params("courseId"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"report": report})
}

// ExportCourseReportAPI downloads the attendance report as an Excel workbook.
func ExportCourseReportAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	report, err := services.GenerateCourseReport(config.GetDB(), user, c.Params("courseId"))
	if err != nil {
		return auth.APIError(c, err)
	}

	buf, filename, err := services.BuildReportXLSX(report)
	if err != nil {
		return auth.APIError(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
