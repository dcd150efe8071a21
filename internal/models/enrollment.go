package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive EnrollmentStatus = "ACTIVE"
)

// Enrollment links a student to a course at a specific branch, tracking
// purchased versus attended session counts. At most one enrollment exists
// per (student, course) pair.
type Enrollment struct {
	ID                string           `db:"id" json:"id"`
	StudentID         string           `db:"student_id" json:"studentId"`
	CourseID          string           `db:"course_id" json:"courseId"`
	BranchID          string           `db:"branch_id" json:"branchId"`
	SessionsPurchased int              `db:"sessions_purchased" json:"sessionsPurchased"`
	SessionsAttended  int              `db:"sessions_attended" json:"sessionsAttended"`
	Status            EnrollmentStatus `db:"status" json:"status"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updatedAt"`
}

// EnrollmentDetail enriches an enrollment with course, subject and branch names.
type EnrollmentDetail struct {
	Enrollment
	CourseTitle string `db:"course_title" json:"courseTitle"`
	SubjectName string `db:"subject_name" json:"subjectName"`
	BranchName  string `db:"branch_name" json:"branchName"`
}

// StudentEnrollmentRow is the per-student enrollment listing shape.
type StudentEnrollmentRow struct {
	ID                string `db:"id" json:"id"`
	CourseID          string `db:"course_id" json:"courseId"`
	CourseTitle       string `db:"course_title" json:"courseTitle"`
	SubjectName       string `db:"subject_name" json:"subjectName"`
	SessionsPurchased int    `db:"sessions_purchased" json:"sessionsPurchased"`
	SessionsAttended  int    `db:"sessions_attended" json:"sessionsAttended"`
}
