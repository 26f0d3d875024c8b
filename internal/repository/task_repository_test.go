package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	setCompletionSQL = "UPDATE `tasks` SET"
	taskExistsSQL    = "SELECT count(*) FROM `tasks` WHERE id = ?"
)

func TestSetCompletion_UnchangedRowIsNotMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setCompletionSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(taskExistsSQL)).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	completedBy := uint64(2)
	require.NoError(t, repo.SetCompletion(context.Background(), 9, true, &completedBy))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCompletion_UnknownTask(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setCompletionSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(taskExistsSQL)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	err := repo.SetCompletion(context.Background(), 404, false, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCompletion_ChangedRowSkipsLookup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setCompletionSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetCompletion(context.Background(), 9, false, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
