package models

// ReportStatus is the derived completion state of an enrollment. It is
// computed from the stored counters, never persisted.
type ReportStatus string

const (
	ReportStatusInProgress ReportStatus = "IN_PROGRESS"
	ReportStatusComplete   ReportStatus = "COMPLETE"
	ReportStatusOver       ReportStatus = "OVER"
)

// EnrollmentReportRow is one row of the enrollment progress report.
type EnrollmentReportRow struct {
	ID                string       `db:"id" json:"id"`
	StudentID         string       `db:"student_id" json:"studentId"`
	StudentCode       string       `db:"student_code" json:"studentCode"`
	StudentName       string       `db:"student_name" json:"studentName"`
	CourseID          string       `db:"course_id" json:"courseId"`
	CourseTitle       string       `db:"course_title" json:"courseTitle"`
	SubjectName       string       `db:"subject_name" json:"subjectName"`
	BranchID          string       `db:"branch_id" json:"branchId"`
	BranchName        string       `db:"branch_name" json:"branchName"`
	SessionsPurchased int          `db:"sessions_purchased" json:"sessionsPurchased"`
	SessionsAttended  int          `db:"sessions_attended" json:"sessionsAttended"`
	ProgressPercent   int          `json:"progressPercent"`
	Status            ReportStatus `json:"status"`
}

// ReportFilter scopes the enrollment report. Status holds the raw query
// token (complete, incomplete, over); matching happens after derivation.
type ReportFilter struct {
	BranchID string
	CourseID string
	Status   string
	Query    string
}
