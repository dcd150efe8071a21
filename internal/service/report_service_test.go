package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

func reportRowsFixture() []models.EnrollmentReportRow {
	return []models.EnrollmentReportRow{
		{ID: "enr-1", StudentCode: "S001", SessionsPurchased: 12, SessionsAttended: 3},
		{ID: "enr-2", StudentCode: "S002", SessionsPurchased: 10, SessionsAttended: 10},
		{ID: "enr-3", StudentCode: "S003", SessionsPurchased: 5, SessionsAttended: 6},
		{ID: "enr-4", StudentCode: "S004", SessionsPurchased: 0, SessionsAttended: 0},
	}
}

func TestReportDerivation(t *testing.T) {
	repo := &mockEnrollmentRepo{rows: reportRowsFixture()}
	svc := NewReportService(repo, nil, nil)

	rows, err := svc.Enrollments(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.Equal(t, models.ReportStatusInProgress, rows[0].Status)
	require.Equal(t, 25, rows[0].ProgressPercent)

	require.Equal(t, models.ReportStatusComplete, rows[1].Status)
	require.Equal(t, 100, rows[1].ProgressPercent)

	require.Equal(t, models.ReportStatusOver, rows[2].Status)
	require.Equal(t, 120, rows[2].ProgressPercent)

	// zero purchased counts as complete with zero progress
	require.Equal(t, models.ReportStatusComplete, rows[3].Status)
	require.Equal(t, 0, rows[3].ProgressPercent)
}

func TestReportStatusTokenFilter(t *testing.T) {
	repo := &mockEnrollmentRepo{rows: reportRowsFixture()}
	svc := NewReportService(repo, nil, nil)

	complete, err := svc.Enrollments(context.Background(), models.ReportFilter{Status: "complete"})
	require.NoError(t, err)
	require.Len(t, complete, 2)

	incomplete, err := svc.Enrollments(context.Background(), models.ReportFilter{Status: "INCOMPLETE"})
	require.NoError(t, err)
	require.Len(t, incomplete, 1)
	require.Equal(t, "enr-1", incomplete[0].ID)

	over, err := svc.Enrollments(context.Background(), models.ReportFilter{Status: "over"})
	require.NoError(t, err)
	require.Len(t, over, 1)
	require.Equal(t, "enr-3", over[0].ID)
}

func TestReportRejectsUnknownStatusToken(t *testing.T) {
	repo := &mockEnrollmentRepo{rows: reportRowsFixture()}
	svc := NewReportService(repo, nil, nil)

	_, err := svc.Enrollments(context.Background(), models.ReportFilter{Status: "finished"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestProgressPercentRounding(t *testing.T) {
	require.Equal(t, 33, progressPercent(1, 3))
	require.Equal(t, 67, progressPercent(2, 3))
	require.Equal(t, 0, progressPercent(5, 0))
	require.Equal(t, 150, progressPercent(3, 2))
}
