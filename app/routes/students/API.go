package students

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/validation"
)

func GetRosterAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	roster, err := services.CourseRoster(config.GetDB(), user, c.Params("courseId"))
	if err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"students": roster})
}

func EnrollStudentAPI(c *fiber.Ctx) error {
	var ref models.StudentRef
	if err := c.BodyParser(&ref); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(ref); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	enrollment, err := services.EnrollStudent(config.GetDB(), user, c.Params("courseId"), ref)
	if err != nil {
		return auth.APIError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Student enrolled successfully",
		"enrollment": enrollment,
	})
}

// ImportRosterAPI enrolls students in bulk from an uploaded CSV file. The
// response reports how many rows were imported and skipped, and which rows
// failed.
func ImportRosterAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No CSV file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Could not read the uploaded file"})
	}
	defer file.Close()

	refs, err := services.ParseRosterCSV(file)
	if err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	summary, err := services.ImportRoster(config.GetDB(), user, c.Params("courseId"), refs)
	if err != nil {
		return auth.APIError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Imported %d students, skipped %d", summary.Imported, summary.Skipped),
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"errors":   summary.Errors,
	})
}

func ExportRosterAPI(c *fiber.Ctx) error {
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

	buf, err := services.BuildRosterCSV(roster)
	if err != nil {
		return auth.APIError(c, err)
	}

	filename := services.ExportFilename("roster", course.Name, "csv")
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// LinkStudentAPI attaches a login account to a roster record by hand.
func LinkStudentAPI(c *fiber.Ctx) error {
	type LinkRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}

	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return auth.APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	if err := services.LinkStudent(config.GetDB(), user, c.Params("id"), req.UserID); err != nil {
		return auth.APIError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Student linked successfully"})
}
