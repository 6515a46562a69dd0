package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
)

// APIError writes a service error as a JSON response with the right status
// code. Storage errors are logged and hidden behind a generic message.
func APIError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == 500 {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		return c.Status(status).JSON(fiber.Map{
			"error":  validationErr.Message,
			"fields": validationErr.Fields,
		})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
