package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

func TestExportEnrollmentReportCSV(t *testing.T) {
	repo := &mockEnrollmentRepo{rows: []models.EnrollmentReportRow{
		{ID: "enr-1", StudentCode: "S001", StudentName: "Alice Tan", CourseTitle: "Math Foundations",
			SubjectName: "Math", BranchName: "Central", SessionsPurchased: 12, SessionsAttended: 3},
	}}
	svc := NewExportService(NewReportService(repo, nil, nil))

	result, err := svc.EnrollmentReport(context.Background(), models.ReportFilter{}, ExportFormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.Equal(t, "enrollment-report.csv", result.Filename)

	body := string(result.Content)
	require.True(t, strings.HasPrefix(body, "Student Code,Student Name,Course"))
	require.Contains(t, body, "S001,Alice Tan,Math Foundations,Math,Central,12,3,25,IN_PROGRESS")
}

func TestExportEnrollmentReportPDF(t *testing.T) {
	repo := &mockEnrollmentRepo{rows: []models.EnrollmentReportRow{
		{ID: "enr-1", StudentCode: "S001", StudentName: "Alice Tan", SessionsPurchased: 10, SessionsAttended: 10},
	}}
	svc := NewExportService(NewReportService(repo, nil, nil))

	result, err := svc.EnrollmentReport(context.Background(), models.ReportFilter{}, ExportFormatPDF)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.NotEmpty(t, result.Content)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := NewExportService(NewReportService(repo, nil, nil))

	_, err := svc.EnrollmentReport(context.Background(), models.ReportFilter{}, "xlsx")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
