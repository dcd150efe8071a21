package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

func TestSessionRepositoryListDayFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	from := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	rows := sqlmock.NewRows([]string{"session_id", "course_title", "subject_name", "branch_name", "start_at", "end_at", "teacher"}).
		AddRow("ses-1", "Math Foundations", "Math", "Central", from.Add(2*time.Hour), from.Add(4*time.Hour), nil)
	mock.ExpectQuery(regexp.QuoteMeta("se.start_at >= $1 AND se.start_at < $2 AND se.branch_id = $3")).
		WithArgs(from, to, "br-1").
		WillReturnRows(rows)

	sessions, err := repo.List(context.Background(), models.SessionFilter{StartFrom: &from, StartTo: &to, BranchID: "br-1"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "ses-1", sessions[0].SessionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryRosterMarksEnrolled(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	rows := sqlmock.NewRows([]string{"student_id", "student_name", "status", "note"}).
		AddRow("stu-1", "S001 - Alice Tan", "PRESENT", nil).
		AddRow("stu-2", "S002 - Ben Koh", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN attendance a ON a.session_id = se.id")).
		WithArgs("ses-1").
		WillReturnRows(rows)

	roster, err := repo.Roster(context.Background(), "ses-1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, "S001 - Alice Tan", roster[0].StudentName)
	require.NotNil(t, roster[0].Status)
	require.Equal(t, models.AttendanceStatusPresent, *roster[0].Status)
	require.Nil(t, roster[1].Status)
	require.True(t, roster[0].Enrolled)
	require.True(t, roster[1].Enrolled)
	require.NoError(t, mock.ExpectationsWereMet())
}
