package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/services"
)

// GetDashboard renders the role-appropriate home page: course stats for
// teachers and admins, own attendance and grades for students.
func GetDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := config.GetDB()

	if user.Role == models.RoleStudent {
		board, err := services.StudentDashboard(db, user)
		if err != nil {
			return c.Status(500).Render("error", fiber.Map{
				"Title":        "Error - Student Performance Tracker",
				"CurrentPage":  "dashboard",
				"ErrorCode":    "500",
				"ErrorTitle":   "Database Error",
				"ErrorMessage": "Failed to load your dashboard. Please try again later.",
				"ShowRetry":    true,
				"user":         user,
			})
		}
		return c.Render("dashboard/student", fiber.Map{
			"Title":       "My Courses - Student Performance Tracker",
			"CurrentPage": "dashboard",
			"dashboard":   board,
			"user":        user,
		})
	}

	stats, err := teacherStats(db, user)
	if err != nil {
		return c.Status(500).Render("error", fiber.Map{
			"Title":        "Error - Student Performance Tracker",
			"CurrentPage":  "dashboard",
			"ErrorCode":    "500",
			"ErrorTitle":   "Database Error",
			"ErrorMessage": "Failed to load dashboard statistics. Please try again later.",
			"ShowRetry":    true,
			"user":         user,
		})
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - Student Performance Tracker",
		"CurrentPage": "dashboard",
		"stats":       stats,
		"user":        user,
	})
}

// GetDashboardAPI returns the same role-dependent payload as JSON
func GetDashboardAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := config.GetDB()

	if user.Role == models.RoleStudent {
		board, err := services.StudentDashboard(db, user)
		if err != nil {
			return auth.APIError(c, err)
		}
		return c.JSON(fiber.Map{"dashboard": board})
	}

	stats, err := teacherStats(db, user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard statistics"})
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func teacherStats(db *sql.DB, user *models.User) (*models.TeacherDashboardStats, error) {
	if user.Role == models.RoleAdmin {
		return database.GetAdminDashboardStats(db)
	}
	return database.GetTeacherDashboardStats(db, user.ID)
}
