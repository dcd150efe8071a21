package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.CourseDetail, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	BranchIDs(ctx context.Context, courseID string) ([]string, error)
	Create(ctx context.Context, course *models.Course, branchIDs []string) error
}

// CreateCourseRequest captures fields for creating a course with its branch links.
type CreateCourseRequest struct {
	SubjectID     string   `json:"subjectId" validate:"required"`
	Title         string   `json:"title" validate:"required,max=200"`
	TotalSessions int      `json:"totalSessions" validate:"required,gt=0"`
	BranchIDs     []string `json:"branchIds" validate:"required,min=1,dive,required"`
}

// CourseService handles course workflows.
type CourseService struct {
	repo      courseRepository
	subjects  subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a course service.
func NewCourseService(repo courseRepository, subjects subjectRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

// List returns all courses with subject and branch expansion.
func (s *CourseService) List(ctx context.Context) ([]models.CourseDetail, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Create adds a course linked to at least one branch. The course row and its
// branch links are written in one transaction by the repository.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	course := &models.Course{
		SubjectID:     req.SubjectID,
		Title:         req.Title,
		TotalSessions: req.TotalSessions,
	}
	if err := s.repo.Create(ctx, course, req.BranchIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	return &models.CourseDetail{
		ID:            course.ID,
		SubjectID:     course.SubjectID,
		SubjectName:   subject.Name,
		Title:         course.Title,
		TotalSessions: course.TotalSessions,
		BranchIDs:     req.BranchIDs,
	}, nil
}
