package main

import (
	"fmt"
	"log"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
)

// Connects with the configured credentials and prints row counts per table,
// for checking an environment before pointing the server at it.
func main() {
	config.Load()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	tables := []string{
		"users", "user_sessions", "courses", "students",
		"enrollments", "sessions", "attendances", "grades",
	}

	fmt.Println("Checking tables...")
	for _, table := range tables {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			log.Printf("%-14s error: %v", table, err)
			continue
		}
		fmt.Printf("%-14s %d rows\n", table, count)
	}
	fmt.Println("Check complete.")
}
