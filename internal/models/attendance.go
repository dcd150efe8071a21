package models

import "time"

// AttendanceStatus is the per-student presence mark for one session.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
	AttendanceStatusLeave   AttendanceStatus = "LEAVE"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLeave:
		return true
	default:
		return false
	}
}

// Attendance holds one presence record per (session, student) pair. The
// roster for a session is always replaced wholesale, never patched.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	SessionID string           `db:"session_id" json:"sessionId"`
	StudentID string           `db:"student_id" json:"studentId"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Note      *string          `db:"note" json:"note"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}

// RosterRow pairs an enrolled student with any prior attendance mark.
type RosterRow struct {
	StudentID   string            `db:"student_id" json:"studentId"`
	StudentName string            `db:"student_name" json:"studentName"`
	Status      *AttendanceStatus `db:"status" json:"status"`
	Note        *string           `db:"note" json:"note"`
	Enrolled    bool              `json:"enrolled"`
}

// SessionRoster is the full attendance view of one session.
type SessionRoster struct {
	SessionID   string      `json:"sessionId"`
	CourseTitle string      `json:"courseTitle"`
	SubjectName string      `json:"subjectName"`
	BranchName  string      `json:"branchName"`
	StartAt     time.Time   `json:"startAt"`
	EndAt       time.Time   `json:"endAt"`
	Teacher     *string     `json:"teacher"`
	Rows        []RosterRow `json:"rows"`
}

// StudentAttendanceRow is one entry of a student's attendance history.
type StudentAttendanceRow struct {
	SessionID   string           `db:"session_id" json:"sessionId"`
	Date        time.Time        `db:"date" json:"date"`
	SubjectName string           `db:"subject_name" json:"subjectName"`
	CourseTitle string           `db:"course_title" json:"courseTitle"`
	BranchName  string           `db:"branch_name" json:"branchName"`
	Status      AttendanceStatus `db:"status" json:"status"`
	Note        *string          `db:"note" json:"note"`
}
