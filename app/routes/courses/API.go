package courses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/validation"
)

func GetCoursesAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	overviews, err := services.ListCourses(config.GetDB(), user)
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"courses": overviews})
}

func CreateCourseAPI(c *fiber.Ctx) error {
	type CreateCourseRequest struct {
		Name        string `json:"name" validate:"required"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	course, err := services.CreateCourse(config.GetDB(), user, req.Name, req.Code, req.Description)
	if err != nil {
		return auth.APIError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

func GetCourseAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	course, err := services.GetManagedCourse(config.GetDB(), user, c.Params("id"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"course": course})
}

func DeleteCourseAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := services.DeleteCourse(config.GetDB(), user, c.Params("id")); err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

// renderServiceError maps a service error onto the web error page.
func renderServiceError(c *fiber.Ctx, err error, currentPage string) error {
	status := apperrors.HTTPStatus(err)
	title := "An Error Occurred"
	message := err.Error()
	if status == 500 {
		title = "Server Error"
		message = "We're experiencing technical difficulties. Please try again later."
	}

	return c.Status(status).Render("error", fiber.Map{
		"Title":        "Error - Student Performance Tracker",
		"CurrentPage":  currentPage,
		"ErrorCode":    status,
		"ErrorTitle":   title,
		"ErrorMessage": message,
		"ShowRetry":    status == 500,
		"user":         c.Locals("user"),
	})
}
