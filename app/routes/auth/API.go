package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/validation"
)

// LoginAPI signs a user in by name and role, creating the account on first
// sign-in. Accounts with a password set must also present it.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=teacher student admin"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return APIError(c, err)
	}

	role, _ := models.ParseRole(req.Role)
	name := strings.TrimSpace(req.Name)
	db := config.GetDB()

	user, err := database.GetUserByNameAndRole(db, name, role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if user == nil {
		// First sign-in creates the account. A password can be added
		// later via change-password.
		user = &models.User{Name: name, Role: role}
		if err := database.CreateUser(db, user); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
		}
		log.Printf("Created %s account for %s", role, name)
	} else {
		if !user.IsActive {
			return c.Status(403).JSON(fiber.Map{"error": "This account is disabled"})
		}
		if user.PasswordHash != "" && !CheckPasswordHash(req.Password, user.PasswordHash) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
	}

	if err := database.UpdateLastLogin(db, user.ID); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Name, err)
	}

	// Students claim their roster record on first sign-in
	if user.Role == models.RoleStudent {
		if _, err := services.ClaimRosterRecord(db, user); err != nil {
			log.Printf("Failed to claim roster record for %s: %v", user.Name, err)
		}
	}

	sessionID := GenerateSessionID().String()
	expiresAt := GetSessionExpiry()
	if err := database.CreateUserSession(db, sessionID, user.ID, expiresAt); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}

	token, err := GenerateJWT(user.ID, user.Name, string(user.Role), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	// Revoke the server-side session if the token still parses
	if tokenString := tokenFromRequest(c); tokenString != "" {
		if claims, err := ValidateJWT(tokenString); err == nil && claims.SessionID != "" {
			if err := database.DeleteUserSession(config.GetDB(), claims.SessionID); err != nil {
				log.Printf("Failed to delete session %s: %v", claims.SessionID, err)
			}
		}
	}

	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}
	return c.Redirect("/auth/login")
}

// MeAPI returns the signed-in user's account as stored.
func MeAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	stored, err := database.GetUserByID(config.GetDB(), user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"user": stored})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validation.Struct(req); err != nil {
		return APIError(c, err)
	}

	user := c.Locals("user").(*models.User)
	db := config.GetDB()

	// Load the stored hash; the context user comes from token claims only
	stored, err := database.GetUserByID(db, user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if stored.PasswordHash != "" && !CheckPasswordHash(req.CurrentPassword, stored.PasswordHash) {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(db, user.ID, hashedPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
