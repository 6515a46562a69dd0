package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/config"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/database"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/routes/auth"
)

// Creates an account from the command line, for bootstrapping an admin or
// pre-creating accounts with passwords.
func main() {
	name := flag.String("name", "", "full name (required)")
	email := flag.String("email", "", "email address")
	role := flag.String("role", "teacher", "role: teacher, student or admin")
	password := flag.String("password", "", "password; empty leaves the account passwordless")
	flag.Parse()

	if *name == "" {
		fmt.Println("Usage: add_user -name \"Jane Doe\" [-email jane@example.com] [-role teacher] [-password secret]")
		os.Exit(1)
	}

	parsedRole, ok := models.ParseRole(*role)
	if !ok {
		fmt.Printf("Invalid role %q: must be teacher, student or admin\n", *role)
		os.Exit(1)
	}

	config.Load()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	user := &models.User{Name: *name, Role: parsedRole}
	if *email != "" {
		existing, err := database.GetUserByEmail(db, *email)
		if err != nil {
			fmt.Printf("Error checking email: %v\n", err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("A user with email %s already exists: %s\n", *email, existing.Name)
			os.Exit(1)
		}
		user.Email = email
	}
	if *password != "" {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			fmt.Printf("Error hashing password: %v\n", err)
			os.Exit(1)
		}
		user.PasswordHash = hash
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s)\n", user.Name, user.Role)
}
