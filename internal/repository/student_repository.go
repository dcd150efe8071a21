package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter, ordered by code, plus the
// total row count. Page and PageSize are assumed pre-clamped by the service.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students"
	var args []interface{}
	if filter.Query != "" {
		base += " WHERE (LOWER(code) LIKE $1 OR LOWER(full_name) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, code, full_name, phone, is_active, created_at, updated_at
        %s ORDER BY code ASC LIMIT %d OFFSET %d`, base, size, offset)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, code, full_name, phone, is_active, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByCode checks if a student with the given code exists, optionally
// excluding an id.
func (r *StudentRepository) ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE LOWER(code) = LOWER($1)"
	args := []interface{}{code}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student code: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, code, full_name, phone, is_active, created_at, updated_at)
        VALUES (:id, :code, :full_name, :phone, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET code = :code, full_name = :full_name, phone = :phone, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// SetActive toggles the student active flag.
func (r *StudentRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE students SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("toggle student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle student: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Enrollments returns the student's enrollments with course context, newest first.
func (r *StudentRepository) Enrollments(ctx context.Context, studentID string) ([]models.StudentEnrollmentRow, error) {
	const query = `SELECT e.id, e.course_id, c.title AS course_title, s.name AS subject_name,
        e.sessions_purchased, e.sessions_attended
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        JOIN subjects s ON s.id = c.subject_id
        WHERE e.student_id = $1
        ORDER BY e.created_at DESC`
	var rows []models.StudentEnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("student enrollments: %w", err)
	}
	return rows, nil
}

// AttendanceHistory returns the student's attendance records joined with
// session context, newest session first. The optional bounds filter on the
// session start timestamp.
func (r *StudentRepository) AttendanceHistory(ctx context.Context, studentID string, from, to *time.Time) ([]models.StudentAttendanceRow, error) {
	base := `FROM attendance a
        JOIN sessions se ON se.id = a.session_id
        JOIN courses c ON c.id = se.course_id
        JOIN subjects su ON su.id = c.subject_id
        JOIN branches b ON b.id = se.branch_id
        WHERE a.student_id = $1`
	args := []interface{}{studentID}
	if from != nil {
		base += fmt.Sprintf(" AND se.start_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		base += fmt.Sprintf(" AND se.start_at <= $%d", len(args)+1)
		args = append(args, *to)
	}

	query := fmt.Sprintf(`SELECT a.session_id, se.start_at AS date, su.name AS subject_name,
        c.title AS course_title, b.name AS branch_name, a.status, a.note
        %s ORDER BY se.start_at DESC`, base)
	var rows []models.StudentAttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("student attendance history: %w", err)
	}
	return rows, nil
}
