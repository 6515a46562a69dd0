package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// CreateSession inserts a course meeting. A second session for the same
// (course, date) surfaces as a unique violation on unique_session.
func CreateSession(db *sql.DB, session *models.Session) error {
	query := `INSERT INTO sessions (course_id, session_date, topic, created_at)
			  VALUES ($1, $2, $3, NOW())
			  RETURNING id, created_at`

	err := db.QueryRow(query, session.CourseID, session.SessionDate, session.Topic).Scan(
		&session.ID, &session.CreatedAt,
	)
	return err
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, course_id, session_date, topic, created_at
			  FROM sessions WHERE id = $1`

	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.CourseID, &session.SessionDate, &session.Topic, &session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionsByCourse returns a course's sessions in date order. Every
// percentage computation iterates this full set.
func GetSessionsByCourse(db *sql.DB, courseID string) ([]*models.Session, error) {
	query := `SELECT id, course_id, session_date, topic, created_at
			  FROM sessions WHERE course_id = $1
			  ORDER BY session_date`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		session := &models.Session{}
		err := rows.Scan(
			&session.ID, &session.CourseID, &session.SessionDate, &session.Topic, &session.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
