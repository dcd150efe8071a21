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

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ExistsForStudentCourse checks whether an enrollment already exists for the
// (student, course) pair.
func (r *EnrollmentRepository) ExistsForStudentCourse(ctx context.Context, studentID, courseID string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now

	const query = `INSERT INTO enrollments (id, student_id, course_id, branch_id, sessions_purchased, sessions_attended, status, created_at, updated_at)
        VALUES (:id, :student_id, :course_id, :branch_id, :sessions_purchased, :sessions_attended, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// FindDetailByID returns an enrollment with course, subject and branch names.
func (r *EnrollmentRepository) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.course_id, e.branch_id, e.sessions_purchased, e.sessions_attended,
        e.status, e.created_at, e.updated_at,
        c.title AS course_title, s.name AS subject_name, b.name AS branch_name
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        JOIN subjects s ON s.id = c.subject_id
        JOIN branches b ON b.id = e.branch_id
        WHERE e.id = $1`
	var detail models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ReportRows returns enrollment report rows joined with student, course,
// subject and branch, ordered by student code then course title. Branch,
// course and free-text filters are pushed into SQL; the derived status
// filter is applied by the service after computation.
func (r *EnrollmentRepository) ReportRows(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentReportRow, error) {
	base := `FROM enrollments e
        JOIN students st ON st.id = e.student_id
        JOIN courses c ON c.id = e.course_id
        JOIN subjects su ON su.id = c.subject_id
        JOIN branches b ON b.id = e.branch_id`
	where := []string{"1=1"}
	var args []interface{}

	if filter.BranchID != "" {
		where = append(where, fmt.Sprintf("e.branch_id = $%d", len(args)+1))
		args = append(args, filter.BranchID)
	}
	if filter.CourseID != "" {
		where = append(where, fmt.Sprintf("e.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Query != "" {
		where = append(where, fmt.Sprintf("(LOWER(st.code) LIKE $%d OR LOWER(st.full_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
	}

	query := fmt.Sprintf(`SELECT e.id, e.student_id, st.code AS student_code, st.full_name AS student_name,
        e.course_id, c.title AS course_title, su.name AS subject_name,
        e.branch_id, b.name AS branch_name, e.sessions_purchased, e.sessions_attended
        %s WHERE %s ORDER BY st.code ASC, c.title ASC`, base, strings.Join(where, " AND "))

	var rows []models.EnrollmentReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("enrollment report rows: %w", err)
	}
	return rows, nil
}
