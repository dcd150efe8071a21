package models

import "time"

// Session is one scheduled occurrence of a course at a branch.
type Session struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"courseId"`
	BranchID  string    `db:"branch_id" json:"branchId"`
	StartAt   time.Time `db:"start_at" json:"startAt"`
	EndAt     time.Time `db:"end_at" json:"endAt"`
	Teacher   *string   `db:"teacher" json:"teacher"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SessionDetail is the listing shape joined with course, subject and branch.
type SessionDetail struct {
	SessionID   string    `db:"session_id" json:"sessionId"`
	CourseTitle string    `db:"course_title" json:"courseTitle"`
	SubjectName string    `db:"subject_name" json:"subjectName"`
	BranchName  string    `db:"branch_name" json:"branchName"`
	StartAt     time.Time `db:"start_at" json:"startAt"`
	EndAt       time.Time `db:"end_at" json:"endAt"`
	Teacher     *string   `db:"teacher" json:"teacher"`
}

// SessionFilter scopes the session listing. StartFrom/StartTo bound the
// session start timestamp when a calendar day filter is requested.
type SessionFilter struct {
	StartFrom *time.Time
	StartTo   *time.Time
	BranchID  string
	SubjectID string
}
