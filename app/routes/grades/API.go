package grades

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/validation"
)

func GetGradesAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	grades, err := services.CourseGrades(config.GetDB(), user, c.Params("courseId"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"grades": grades})
}

func CreateGradeAPI(c *fiber.Ctx) error {
	type CreateGradeRequest struct {
		StudentID      string  `json:"student_id" validate:"required,uuid"`
		AssignmentName string  `json:"assignment_name" validate:"required"`
		GradeValue     float64 `json:"grade_value" validate:"gte=0"`
		MaxPoints      float64 `json:"max_points" validate:"gte=0"`
		AssignmentType string  `json:"assignment_type"`
		DueDate        string  `json:"due_date"`
		Notes          string  `json:"notes"`
	}

	var req CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	grade, err := services.AddGrade(config.GetDB(), user, c.Params("courseId"), services.GradeInput{
		StudentID:      req.StudentID,
		AssignmentName: req.AssignmentName,
		GradeValue:     req.GradeValue,
		MaxPoints:      req.MaxPoints,
		AssignmentType: req.AssignmentType,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		return auth.APIError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Grade recorded successfully",
		"grade":   grade,
	})
}

func DeleteGradeAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := services.DeleteGrade(config.GetDB(), user, c.Params("id")); err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Grade deleted successfully"})
}
