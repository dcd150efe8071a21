package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

// SessionRepository handles persistence for class sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns sessions matching the filter, ordered by start time ascending,
// expanded with course, subject and branch names.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.SessionDetail, error) {
	base := `FROM sessions se
        JOIN courses c ON c.id = se.course_id
        JOIN subjects su ON su.id = c.subject_id
        JOIN branches b ON b.id = se.branch_id`
	where := []string{"1=1"}
	var args []interface{}

	if filter.StartFrom != nil {
		where = append(where, fmt.Sprintf("se.start_at >= $%d", len(args)+1))
		args = append(args, *filter.StartFrom)
	}
	if filter.StartTo != nil {
		where = append(where, fmt.Sprintf("se.start_at < $%d", len(args)+1))
		args = append(args, *filter.StartTo)
	}
	if filter.BranchID != "" {
		where = append(where, fmt.Sprintf("se.branch_id = $%d", len(args)+1))
		args = append(args, filter.BranchID)
	}
	if filter.SubjectID != "" {
		where = append(where, fmt.Sprintf("c.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}

	query := fmt.Sprintf(`SELECT se.id AS session_id, c.title AS course_title, su.name AS subject_name,
        b.name AS branch_name, se.start_at, se.end_at, se.teacher
        %s WHERE %s ORDER BY se.start_at ASC`, base, strings.Join(where, " AND "))

	var sessions []models.SessionDetail
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns a session by id.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	const query = `SELECT id, course_id, branch_id, start_at, end_at, teacher, created_at, updated_at FROM sessions WHERE id = $1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// FindDetailByID returns a session with course, subject and branch names.
func (r *SessionRepository) FindDetailByID(ctx context.Context, id string) (*models.SessionDetail, error) {
	const query = `SELECT se.id AS session_id, c.title AS course_title, su.name AS subject_name,
        b.name AS branch_name, se.start_at, se.end_at, se.teacher
        FROM sessions se
        JOIN courses c ON c.id = se.course_id
        JOIN subjects su ON su.id = c.subject_id
        JOIN branches b ON b.id = se.branch_id
        WHERE se.id = $1`
	var detail models.SessionDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO sessions (id, course_id, branch_id, start_at, end_at, teacher, created_at, updated_at)
        VALUES (:id, :course_id, :branch_id, :start_at, :end_at, :teacher, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Roster returns one row per enrollment of the session's course, left-joined
// with any attendance already recorded for the session.
func (r *SessionRepository) Roster(ctx context.Context, sessionID string) ([]models.RosterRow, error) {
	const query = `SELECT e.student_id, st.code || ' - ' || st.full_name AS student_name, a.status, a.note
        FROM sessions se
        JOIN enrollments e ON e.course_id = se.course_id
        JOIN students st ON st.id = e.student_id
        LEFT JOIN attendance a ON a.session_id = se.id AND a.student_id = e.student_id
        WHERE se.id = $1
        ORDER BY st.code ASC`
	var rows []models.RosterRow
	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("session roster: %w", err)
	}
	for i := range rows {
		rows[i].Enrolled = true
	}
	return rows, nil
}
