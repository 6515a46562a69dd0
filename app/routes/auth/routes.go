package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	api := app.Group("/api/auth")
	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)

	// Protected routes
	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := ValidateJWT(tokenString); err == nil {
			return c.Redirect("/dashboard")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - Student Performance Tracker",
	}, "")
}

// tokenFromRequest reads the JWT from the session cookie or, failing that,
// the Authorization header.
func tokenFromRequest(c *fiber.Ctx) string {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	return tokenString
}

// AuthMiddleware validates the JWT, checks the login session it names is
// still alive, and sets the user context
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := tokenFromRequest(c)

	// Check if this is an API request
	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		// For web pages, redirect to login
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/auth/login")
	}

	// A logged-out or purged session invalidates the token before its
	// JWT expiry.
	if _, err := database.GetUserSessionByID(config.GetDB(), claims.SessionID); err != nil {
		if isAPIRequest {
			if err == sql.ErrNoRows {
				return c.Status(401).JSON(fiber.Map{"error": "Session expired"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		return c.Redirect("/auth/login")
	}

	// Create user object from claims
	user := &models.User{
		ID:       claims.UserID,
		Name:     claims.Name,
		Role:     models.Role(claims.Role),
		IsActive: true,
	}

	// Set user context
	c.Locals("user_id", user.ID)
	c.Locals("user_role", string(user.Role))
	c.Locals("session_id", claims.SessionID)
	c.Locals("user", user)

	return c.Next()
}

// RequireRole checks if the user has one of the required roles
func RequireRole(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)

		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				return c.Next()
			}
		}

		// Check if this is an API request
		isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

		if isAPIRequest {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}

		// For web pages, show 403 error page
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Student Performance Tracker",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
			"user":         c.Locals("user"),
		})
	}
}
