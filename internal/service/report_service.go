package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

// ReportService derives enrollment progress reports from stored counters.
type ReportService struct {
	repo   enrollmentRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo enrollmentRepository, cache *CacheService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, cache: cache, logger: logger}
}

// Enrollments builds the progress report. Branch, course and text filters
// are applied in the store; the status token filters rows after derivation
// because the status itself is derived.
func (s *ReportService) Enrollments(ctx context.Context, filter models.ReportFilter) ([]models.EnrollmentReportRow, error) {
	status := strings.ToLower(strings.TrimSpace(filter.Status))
	switch status {
	case "", "complete", "incomplete", "over":
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of complete, incomplete, over")
	}
	filter.Status = status

	key := reportCacheKey(filter)
	var cached []models.EnrollmentReportRow
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.repo.ReportRows(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build enrollment report")
	}

	report := make([]models.EnrollmentReportRow, 0, len(rows))
	for _, row := range rows {
		row.Status = deriveReportStatus(row.SessionsAttended, row.SessionsPurchased)
		row.ProgressPercent = progressPercent(row.SessionsAttended, row.SessionsPurchased)
		if !matchesStatusToken(row.Status, status) {
			continue
		}
		report = append(report, row)
	}

	s.cache.Set(ctx, key, report)
	return report, nil
}

func deriveReportStatus(attended, purchased int) models.ReportStatus {
	switch {
	case attended > purchased:
		return models.ReportStatusOver
	case attended == purchased:
		return models.ReportStatusComplete
	default:
		return models.ReportStatusInProgress
	}
}

func progressPercent(attended, purchased int) int {
	if purchased == 0 {
		return 0
	}
	return int(math.Round(float64(attended) / float64(purchased) * 100))
}

func matchesStatusToken(status models.ReportStatus, token string) bool {
	switch token {
	case "complete":
		return status == models.ReportStatusComplete
	case "incomplete":
		return status == models.ReportStatusInProgress
	case "over":
		return status == models.ReportStatusOver
	default:
		return true
	}
}

func reportCacheKey(filter models.ReportFilter) string {
	return fmt.Sprintf("report:enrollments:%s:%s:%s:%s",
		filter.BranchID, filter.CourseID, filter.Status, strings.ToLower(filter.Query))
}
