package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

// CourseRepository handles persistence for courses and their branch links.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseBranchRow struct {
	CourseID string `db:"course_id"`
	BranchID string `db:"branch_id"`
}

// List returns all courses ordered by title, each expanded with the subject
// name and the ids of the branches offering it.
func (r *CourseRepository) List(ctx context.Context) ([]models.CourseDetail, error) {
	const query = `SELECT c.id, c.subject_id, s.name AS subject_name, c.title, c.total_sessions
        FROM courses c
        JOIN subjects s ON s.id = c.subject_id
        ORDER BY c.title ASC`
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return courses, nil
	}

	const linkQuery = `SELECT course_id, branch_id FROM course_branches ORDER BY course_id, branch_id`
	var links []courseBranchRow
	if err := r.db.SelectContext(ctx, &links, linkQuery); err != nil {
		return nil, fmt.Errorf("list course branches: %w", err)
	}
	byCourse := make(map[string][]string, len(courses))
	for _, link := range links {
		byCourse[link.CourseID] = append(byCourse[link.CourseID], link.BranchID)
	}
	for i := range courses {
		courses[i].BranchIDs = byCourse[courses[i].ID]
		if courses[i].BranchIDs == nil {
			courses[i].BranchIDs = []string{}
		}
	}
	return courses, nil
}

// FindByID returns a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, subject_id, title, total_sessions, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// BranchIDs returns the ids of the branches linked to the course.
func (r *CourseRepository) BranchIDs(ctx context.Context, courseID string) ([]string, error) {
	const query = `SELECT branch_id FROM course_branches WHERE course_id = $1 ORDER BY branch_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, courseID); err != nil {
		return nil, fmt.Errorf("course branch ids: %w", err)
	}
	return ids, nil
}

// Create inserts the course and its branch links in one transaction.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course, branchIDs []string) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create course: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const courseQuery = `INSERT INTO courses (id, subject_id, title, total_sessions, created_at, updated_at)
        VALUES (:id, :subject_id, :title, :total_sessions, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, courseQuery, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	const linkQuery = `INSERT INTO course_branches (course_id, branch_id) VALUES ($1, $2)`
	for _, branchID := range branchIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, course.ID, branchID); err != nil {
			return fmt.Errorf("link course branch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create course: %w", err)
	}
	committed = true
	return nil
}
