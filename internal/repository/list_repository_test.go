package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestListRepository_MaxPositionQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewListRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(MAX(position), -1) FROM `lists` WHERE board_id = ?",
	)).
		WithArgs("brd_1").
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(MAX(position), -1)"}).AddRow(3))

	max, err := repo.MaxPosition("brd_1")
	require.NoError(t, err)
	require.Equal(t, 3, max)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_MaxPositionEmptyBoard(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewListRepository(db)

	// The COALESCE fallback makes an empty board read as -1 so the first
	// append lands at position 0.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(MAX(position), -1) FROM `lists` WHERE board_id = ?",
	)).
		WithArgs("brd_empty").
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(MAX(position), -1)"}).AddRow(-1))

	max, err := repo.MaxPosition("brd_empty")
	require.NoError(t, err)
	require.Equal(t, -1, max)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_UpdatePositionStatement(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewListRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `lists` SET `position`=?,`updated_at`=? WHERE id = ?",
	)).
		WithArgs(2, sqlmock.AnyArg(), "lst_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePosition("lst_1", 2))
	require.NoError(t, mock.ExpectationsWereMet())
}
