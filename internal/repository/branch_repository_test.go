package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/tutor-admin-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBranchRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBranchRepository(db)
	rows := sqlmock.NewRows([]string{"id", "code", "name", "is_active", "created_at", "updated_at"}).
		AddRow("br-1", "CEN", "Central", true, time.Now(), time.Now()).
		AddRow("br-2", "EAST", "Eastside", false, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, is_active, created_at, updated_at FROM branches ORDER BY name ASC")).
		WillReturnRows(rows)

	branches, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, branches, 2)
	require.Equal(t, "CEN", branches[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBranchRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO branches")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	branch := &models.Branch{Code: "CEN", Name: "Central", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), branch))
	require.NotEmpty(t, branch.ID)
	require.False(t, branch.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBranchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM branches WHERE LOWER(code) = LOWER($1)")).
		WithArgs("cen").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	exists, err := repo.ExistsByCode(context.Background(), "cen", "")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM branches WHERE LOWER(code) = LOWER($1) AND id <> $2")).
		WithArgs("cen", "br-1").
		WillReturnError(sql.ErrNoRows)
	exists, err = repo.ExistsByCode(context.Background(), "cen", "br-1")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchRepositorySetActiveMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBranchRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE branches SET is_active = $2")).
		WithArgs("br-missing", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "br-missing", false)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
