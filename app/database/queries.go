package database

import (
	"database/sql"
	"time"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password, role, is_active, last_login, created_at
			  FROM users WHERE id = $1`

	var email, password sql.NullString
	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &email, &password, &user.Role,
		&user.IsActive, &user.LastLogin, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	user.PasswordHash = password.String
	return user, nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password, role, is_active, last_login, created_at
			  FROM users WHERE email = $1`

	var userEmail, password sql.NullString
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &userEmail, &password, &user.Role,
		&user.IsActive, &user.LastLogin, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if userEmail.Valid {
		user.Email = &userEmail.String
	}
	user.PasswordHash = password.String
	return user, nil
}

// GetUserByNameAndRole finds the account matching a login attempt. The pair
// is not unique in the schema, so the oldest account wins deterministically.
func GetUserByNameAndRole(db *sql.DB, name string, role models.Role) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password, role, is_active, last_login, created_at
			  FROM users WHERE name = $1 AND role = $2
			  ORDER BY created_at LIMIT 1`

	var email, password sql.NullString
	err := db.QueryRow(query, name, role).Scan(
		&user.ID, &user.Name, &email, &password, &user.Role,
		&user.IsActive, &user.LastLogin, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	user.PasswordHash = password.String
	return user, nil
}

// CreateUser inserts a new account. A blank PasswordHash is stored as NULL,
// meaning the account has no password set yet.
func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (name, email, password, role, is_active, created_at)
			  VALUES ($1, $2, NULLIF($3, ''), $4, true, NOW())
			  RETURNING id, created_at`

	var email interface{}
	if user.Email != nil && *user.Email != "" {
		email = *user.Email
	}

	err := db.QueryRow(query, user.Name, email, user.PasswordHash, user.Role).Scan(
		&user.ID, &user.CreatedAt,
	)
	if err != nil {
		return err
	}

	user.IsActive = true
	return nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1 WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func UpdateLastLogin(db *sql.DB, userID string) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	_, err := db.Exec(query, userID)
	return err
}

func CreateUserSession(db *sql.DB, sessionID string, userID string, expiresAt time.Time) error {
	query := `INSERT INTO user_sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := db.Exec(query, sessionID, userID, expiresAt)
	return err
}

func GetUserSessionByID(db *sql.DB, sessionID string) (*models.UserSession, error) {
	session := &models.UserSession{}
	query := `SELECT id, user_id, expires_at, created_at FROM user_sessions WHERE id = $1 AND expires_at > NOW()`

	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteUserSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM user_sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

// DeleteExpiredUserSessions removes stale session rows and returns how many
// were purged. Called by the nightly scheduler.
func DeleteExpiredUserSessions(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM user_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
