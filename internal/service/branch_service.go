package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type branchRepository interface {
	List(ctx context.Context) ([]models.Branch, error)
	FindByID(ctx context.Context, id string) (*models.Branch, error)
	ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, branch *models.Branch) error
	SetActive(ctx context.Context, id string, active bool) error
}

// CreateBranchRequest captures fields for creating branches.
type CreateBranchRequest struct {
	Code string `json:"code" validate:"required,max=50"`
	Name string `json:"name" validate:"required,max=200"`
}

// UpdateBranchRequest modifies branch fields. Omitted fields keep their value.
type UpdateBranchRequest struct {
	Code *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// ToggleActiveRequest flips the active flag of a resource.
type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// BranchService handles branch workflows. Branches are never deleted, only
// deactivated.
type BranchService struct {
	repo      branchRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBranchService creates a branch service.
func NewBranchService(repo branchRepository, validate *validator.Validate, logger *zap.Logger) *BranchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{repo: repo, validator: validate, logger: logger}
}

// List returns all branches ordered by name.
func (s *BranchService) List(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list branches")
	}
	return branches, nil
}

// Create adds a new branch ensuring code uniqueness.
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	req.Code = strings.TrimSpace(req.Code)

	exists, err := s.repo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check branch code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "branch code already exists")
	}

	branch := &models.Branch{Code: req.Code, Name: req.Name, IsActive: true}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create branch")
	}
	return branch, nil
}

// Update modifies an existing branch.
func (s *BranchService) Update(ctx context.Context, id string, req UpdateBranchRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch payload")
	}

	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "branch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load branch")
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		exists, err := s.repo.ExistsByCode(ctx, code, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check branch code")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "branch code already exists")
		}
		branch.Code = code
	}
	if req.Name != nil {
		branch.Name = *req.Name
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update branch")
	}
	return branch, nil
}

// SetActive toggles the active flag.
func (s *BranchService) SetActive(ctx context.Context, id string, req ToggleActiveRequest) (*models.Branch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}

	if err := s.repo.SetActive(ctx, id, *req.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "branch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle branch")
	}

	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load branch")
	}
	return branch, nil
}
