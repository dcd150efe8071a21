package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
	"github.com/tutorlane/tutor-admin-api/pkg/export"
)

// ExportFormat identifies a supported report download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered file plus its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders enrollment reports as downloadable files.
type ExportService struct {
	reports *ReportService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewExportService constructs the export service.
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{
		reports: reports,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

var enrollmentReportHeaders = []string{
	"Student Code", "Student Name", "Course", "Subject", "Branch",
	"Purchased", "Attended", "Progress %", "Status",
}

// EnrollmentReport renders the enrollment progress report in the requested format.
func (s *ExportService) EnrollmentReport(ctx context.Context, filter models.ReportFilter, format ExportFormat) (*ExportResult, error) {
	rows, err := s.reports.Enrollments(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: enrollmentReportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Student Code": row.StudentCode,
			"Student Name": row.StudentName,
			"Course":       row.CourseTitle,
			"Subject":      row.SubjectName,
			"Branch":       row.BranchName,
			"Purchased":    fmt.Sprintf("%d", row.SessionsPurchased),
			"Attended":     fmt.Sprintf("%d", row.SessionsAttended),
			"Progress %":   fmt.Sprintf("%d", row.ProgressPercent),
			"Status":       string(row.Status),
		})
	}

	switch ExportFormat(strings.ToLower(string(format))) {
	case ExportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "enrollment-report.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, "Enrollment Progress Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "enrollment-report.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
