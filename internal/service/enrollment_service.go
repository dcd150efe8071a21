package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type enrollmentRepository interface {
	ExistsForStudentCourse(ctx context.Context, studentID, courseID string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error)
	ReportRows(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentReportRow, error)
}

// CreateEnrollmentRequest registers a student into a course at a branch.
type CreateEnrollmentRequest struct {
	StudentID         string `json:"studentId" validate:"required"`
	CourseID          string `json:"courseId" validate:"required"`
	BranchID          string `json:"branchId" validate:"required"`
	SessionsPurchased int    `json:"sessionsPurchased" validate:"required,gt=0"`
}

// EnrollmentService handles enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, courses courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, cache: cache, validator: validate, logger: logger}
}

// Create registers an enrollment. Guards, in order: the course must exist,
// the branch must be among the course's linked branches, and no enrollment
// may already exist for the (student, course) pair. The guards are
// check-then-act; a concurrent duplicate slipping past them is an accepted
// gap, the structured conflict is returned whenever the race is not hit.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	branchIDs, err := s.courses.BranchIDs(ctx, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course branches")
	}
	if !containsString(branchIDs, req.BranchID) {
		return nil, appErrors.Clone(appErrors.ErrBranchNotAllowed, "branch does not offer this course")
	}

	exists, err := s.repo.ExistsForStudentCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEnrollment, "student already enrolled in this course")
	}

	enrollment := &models.Enrollment{
		StudentID:         req.StudentID,
		CourseID:          req.CourseID,
		BranchID:          req.BranchID,
		SessionsPurchased: req.SessionsPurchased,
		SessionsAttended:  0,
		Status:            models.EnrollmentStatusActive,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, "report:enrollments:*")
	}

	detail, err := s.repo.FindDetailByID(ctx, enrollment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return detail, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
