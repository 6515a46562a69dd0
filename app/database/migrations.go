package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema and applies incremental updates. It is
// idempotent and runs once at startup, before the server accepts traffic.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createCoreTables(db); err != nil {
		return err
	}

	if err := addStudentUserLinkColumn(db); err != nil {
		return err
	}

	if err := createIndexes(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createCoreTables(db *sql.DB) error {
	query := `
		CREATE EXTENSION IF NOT EXISTS pgcrypto;

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(120) NOT NULL,
			email VARCHAR(255) UNIQUE,
			password VARCHAR(255),
			role VARCHAR(20) NOT NULL DEFAULT 'teacher',
			is_active BOOLEAN NOT NULL DEFAULT true,
			last_login TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS user_sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(120) NOT NULL,
			code VARCHAR(40),
			description TEXT,
			teacher_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(120) NOT NULL,
			student_id VARCHAR(40),
			email VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT students_student_id_key UNIQUE (student_id)
		);

		CREATE TABLE IF NOT EXISTS enrollments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			enrolled_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_enrollment UNIQUE (course_id, student_id)
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			session_date DATE NOT NULL,
			topic VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_session UNIQUE (course_id, session_date)
		);

		CREATE TABLE IF NOT EXISTS attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			status VARCHAR(10) NOT NULL,
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_attendance UNIQUE (session_id, student_id)
		);

		CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			assignment_name VARCHAR(255) NOT NULL,
			grade_value DOUBLE PRECISION NOT NULL,
			max_points DOUBLE PRECISION NOT NULL DEFAULT 100,
			assignment_type VARCHAR(50),
			due_date DATE,
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to create core tables: %v", err)
		return err
	}
	return nil
}

// addStudentUserLinkColumn adds the explicit login-to-roster link on
// databases created before the column existed.
func addStudentUserLinkColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'students'
				AND column_name = 'user_id'
			) THEN
				ALTER TABLE students ADD COLUMN user_id UUID REFERENCES users(id) ON DELETE SET NULL;
				ALTER TABLE students ADD CONSTRAINT students_user_id_key UNIQUE (user_id);
				RAISE NOTICE 'Added user_id column to students';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for students.user_id column: %v", err)
		return err
	}
	return nil
}

func createIndexes(db *sql.DB) error {
	query := `
		CREATE INDEX IF NOT EXISTS idx_courses_teacher ON courses(teacher_id);
		CREATE INDEX IF NOT EXISTS idx_students_full_name ON students(full_name);
		CREATE INDEX IF NOT EXISTS idx_enrollments_student ON enrollments(student_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_course ON sessions(course_id);
		CREATE INDEX IF NOT EXISTS idx_attendances_student ON attendances(student_id);
		CREATE INDEX IF NOT EXISTS idx_grades_course ON grades(course_id);
		CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id);
		CREATE INDEX IF NOT EXISTS idx_user_sessions_expires ON user_sessions(expires_at);
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to create indexes: %v", err)
		return err
	}
	return nil
}
