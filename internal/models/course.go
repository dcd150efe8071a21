package models

import "time"

// Course is an offering of a subject with a target total session count,
// taught at one or more branches via course_branches links.
type Course struct {
	ID            string    `db:"id" json:"id"`
	SubjectID     string    `db:"subject_id" json:"subjectId"`
	Title         string    `db:"title" json:"title"`
	TotalSessions int       `db:"total_sessions" json:"totalSessions"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseDetail expands a course with its subject name and linked branch ids.
type CourseDetail struct {
	ID            string   `db:"id" json:"id"`
	SubjectID     string   `db:"subject_id" json:"subjectId"`
	SubjectName   string   `db:"subject_name" json:"subjectName"`
	Title         string   `db:"title" json:"title"`
	TotalSessions int      `db:"total_sessions" json:"totalSessions"`
	BranchIDs     []string `json:"branchIds"`
}
