package database

import (
	"database/sql"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

// SaveSessionAttendance applies a batch of status writes for one session as
// a single transaction. Either every entry persists or none do. A record
// already present for a (session, student) pair is updated in place, so the
// pair never grows a second row.
func SaveSessionAttendance(db *sql.DB, sessionID string, entries []models.AttendanceEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO attendances (id, session_id, student_id, status, notes, created_at, updated_at)
			  VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW(), NOW())
			  ON CONFLICT (session_id, student_id)
			  DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()`

	for _, entry := range entries {
		if _, err := tx.Exec(query, sessionID, entry.StudentID, entry.Status, entry.Notes); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetAttendanceBySession returns the recorded statuses for a session keyed
// by student id. Students with no record are simply absent from the map.
func GetAttendanceBySession(db *sql.DB, sessionID string) (map[string]*models.Attendance, error) {
	query := `SELECT id, session_id, student_id, status, notes, created_at, updated_at
			  FROM attendances WHERE session_id = $1`

	rows, err := db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]*models.Attendance)
	for rows.Next() {
		record := &models.Attendance{}
		err := rows.Scan(
			&record.ID, &record.SessionID, &record.StudentID, &record.Status,
			&record.Notes, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records[record.StudentID] = record
	}
	return records, nil
}

// GetStudentAttendanceByCourse returns one student's records across a
// course's sessions, keyed by session id. A dropped row would silently
// shift the computed percentage, so scan failures are returned, not skipped.
func GetStudentAttendanceByCourse(db *sql.DB, courseID, studentID string) (map[string]*models.Attendance, error) {
	query := `SELECT a.id, a.session_id, a.student_id, a.status, a.notes, a.created_at, a.updated_at
			  FROM attendances a
			  JOIN sessions s ON a.session_id = s.id
			  WHERE s.course_id = $1 AND a.student_id = $2`

	rows, err := db.Query(query, courseID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]*models.Attendance)
	for rows.Next() {
		record := &models.Attendance{}
		err := rows.Scan(
			&record.ID, &record.SessionID, &record.StudentID, &record.Status,
			&record.Notes, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records[record.SessionID] = record
	}
	return records, nil
}

// GetCourseAttendanceMatrix returns every record for a course keyed by
// student id and then session id, feeding reports and the matrix export.
func GetCourseAttendanceMatrix(db *sql.DB, courseID string) (map[string]map[string]*models.Attendance, error) {
	query := `SELECT a.id, a.session_id, a.student_id, a.status, a.notes, a.created_at, a.updated_at
			  FROM attendances a
			  JOIN sessions s ON a.session_id = s.id
			  WHERE s.course_id = $1`

	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matrix := make(map[string]map[string]*models.Attendance)
	for rows.Next() {
		record := &models.Attendance{}
		err := rows.Scan(
			&record.ID, &record.SessionID, &record.StudentID, &record.Status,
			&record.Notes, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if matrix[record.StudentID] == nil {
			matrix[record.StudentID] = make(map[string]*models.Attendance)
		}
		matrix[record.StudentID][record.SessionID] = record
	}
	return matrix, nil
}
