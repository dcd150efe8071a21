package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	"github.com/tutorlane/tutor-admin-api/internal/service"
	"github.com/tutorlane/tutor-admin-api/pkg/response"
)

// ReportHandler handles derived report endpoints.
type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

func reportFilterFromQuery(c *gin.Context) models.ReportFilter {
	return models.ReportFilter{
		BranchID: c.Query("branchId"),
		CourseID: c.Query("courseId"),
		Status:   c.Query("status"),
		Query:    strings.TrimSpace(c.Query("q")),
	}
}

// Enrollments godoc
// @Summary Enrollment progress report
// @Tags Reports
// @Produce json
// @Param branchId query string false "Filter by branch"
// @Param courseId query string false "Filter by course"
// @Param status query string false "complete, incomplete or over"
// @Param q query string false "Search by student code or name"
// @Success 200 {object} response.Envelope
// @Router /reports/enrollments [get]
func (h *ReportHandler) Enrollments(c *gin.Context) {
	rows, err := h.reports.Enrollments(c.Request.Context(), reportFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Export godoc
// @Summary Download the enrollment report as CSV or PDF
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param branchId query string false "Filter by branch"
// @Param courseId query string false "Filter by course"
// @Param status query string false "complete, incomplete or over"
// @Param q query string false "Search by student code or name"
// @Success 200 {file} file
// @Router /reports/enrollments/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.EnrollmentReport(c.Request.Context(), reportFilterFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
