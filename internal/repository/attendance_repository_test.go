package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

func TestAttendanceReplaceForSession(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance WHERE session_id = $1")).
		WithArgs("ses-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(sqlmock.AnyArg(), "ses-1", "stu-1", models.AttendanceStatusPresent, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(sqlmock.AnyArg(), "ses-1", "stu-2", models.AttendanceStatusAbsent, "sick", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	note := "sick"
	records := []models.Attendance{
		{StudentID: "stu-1", Status: models.AttendanceStatusPresent},
		{StudentID: "stu-2", Status: models.AttendanceStatusAbsent, Note: &note},
	}
	require.NoError(t, repo.ReplaceForSession(context.Background(), "ses-1", records))
	require.NotEmpty(t, records[0].ID)
	require.Equal(t, "ses-1", records[1].SessionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceReplaceForSessionEmptyClearsRoster(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance WHERE session_id = $1")).
		WithArgs("ses-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceForSession(context.Background(), "ses-1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceReplaceForSessionRollsBackOnInsertError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance WHERE session_id = $1")).
		WithArgs("ses-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	records := []models.Attendance{{StudentID: "stu-1", Status: models.AttendanceStatusLeave}}
	err := repo.ReplaceForSession(context.Background(), "ses-1", records)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
