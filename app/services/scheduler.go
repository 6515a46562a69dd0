package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 2:00 AM
			if now.Hour() == 2 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [02:00]...")

				if err := PurgeExpiredSessions(db); err != nil {
					log.Printf("Error purging expired sessions: %v", err)
				}
			}
		}
	}()
}

// PurgeExpiredSessions removes login sessions past their expiry. Tokens for
// purged sessions stop being accepted even before their JWT expiry.
func PurgeExpiredSessions(db *sql.DB) error {
	count, err := database.DeleteExpiredUserSessions(db)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %v", err)
	}
	if count > 0 {
		log.Printf("Purged %d expired login sessions", count)
	}
	return nil
}
