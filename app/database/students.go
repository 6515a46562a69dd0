package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func scanStudent(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	var externalID, email, userID sql.NullString
	err := row.Scan(
		&student.ID, &student.FullName, &externalID, &email, &userID, &student.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if externalID.Valid {
		student.StudentID = &externalID.String
	}
	if email.Valid {
		student.Email = &email.String
	}
	if userID.Valid {
		student.UserID = &userID.String
	}
	return student, nil
}

func GetStudentByID(db Queryer, id string) (*models.Student, error) {
	query := `SELECT id, full_name, student_id, email, user_id, created_at
			  FROM students WHERE id = $1`
	return scanStudent(db.QueryRow(query, id))
}

// GetStudentByFullName matches on exact name equality, the informal natural
// key used by the roster reconciler. The oldest record wins when duplicates
// exist.
func GetStudentByFullName(db Queryer, fullName string) (*models.Student, error) {
	query := `SELECT id, full_name, student_id, email, user_id, created_at
			  FROM students WHERE full_name = $1
			  ORDER BY created_at LIMIT 1`
	return scanStudent(db.QueryRow(query, fullName))
}

func GetStudentByExternalID(db Queryer, externalID string) (*models.Student, error) {
	query := `SELECT id, full_name, student_id, email, user_id, created_at
			  FROM students WHERE student_id = $1`
	return scanStudent(db.QueryRow(query, externalID))
}

func GetStudentByUserID(db Queryer, userID string) (*models.Student, error) {
	query := `SELECT id, full_name, student_id, email, user_id, created_at
			  FROM students WHERE user_id = $1`
	return scanStudent(db.QueryRow(query, userID))
}

// GetUnlinkedStudentByFullName finds a roster record with no login attached
// yet, used for the one-time claim at student login.
func GetUnlinkedStudentByFullName(db Queryer, fullName string) (*models.Student, error) {
	query := `SELECT id, full_name, student_id, email, user_id, created_at
			  FROM students WHERE full_name = $1 AND user_id IS NULL
			  ORDER BY created_at LIMIT 1`
	return scanStudent(db.QueryRow(query, fullName))
}

func CreateStudent(db Queryer, student *models.Student) error {
	query := `INSERT INTO students (full_name, student_id, email, created_at)
			  VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NOW())
			  RETURNING id, created_at`

	var externalID, email string
	if student.StudentID != nil {
		externalID = *student.StudentID
	}
	if student.Email != nil {
		email = *student.Email
	}

	err := db.QueryRow(query, student.FullName, externalID, email).Scan(
		&student.ID, &student.CreatedAt,
	)
	if err != nil {
		return err
	}

	if externalID == "" {
		student.StudentID = nil
	}
	if email == "" {
		student.Email = nil
	}
	return nil
}

// LinkStudentToUser attaches a login account to a roster record. The link
// is set once: a record that already has a user keeps it.
func LinkStudentToUser(db Queryer, studentID string, userID string) (bool, error) {
	query := `UPDATE students SET user_id = $1 WHERE id = $2 AND user_id IS NULL`
	result, err := db.Exec(query, userID, studentID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
