package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

// AttendanceRepository persists per-session attendance rosters.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ReplaceForSession overwrites the full attendance roster of one session:
// every existing row for the session is deleted, then the provided records
// are inserted, all inside a single transaction. An empty record list leaves
// the session with no attendance. Either both steps commit or neither is
// visible.
func (r *AttendanceRepository) ReplaceForSession(ctx context.Context, sessionID string, records []models.Attendance) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace attendance: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear session attendance: %w", err)
	}

	const insertQuery = `INSERT INTO attendance (id, session_id, student_id, status, note, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.SessionID = sessionID
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if _, err := tx.ExecContext(ctx, insertQuery, rec.ID, rec.SessionID, rec.StudentID, rec.Status, rec.Note, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace attendance: %w", err)
	}
	committed = true
	return nil
}

// ListBySession returns the stored attendance rows for a session.
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Attendance, error) {
	const query = `SELECT id, session_id, student_id, status, note, created_at FROM attendance WHERE session_id = $1 ORDER BY student_id`
	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("list session attendance: %w", err)
	}
	return rows, nil
}
