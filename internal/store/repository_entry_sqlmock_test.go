// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mdiary/internal/logger"
)

var errBoom = errors.New("boom")

func newMockRepo(t *testing.T) (EntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := NewDB(conn, logger.Nop())
	return NewEntryRepository(db, logger.Nop()), mock
}

func TestEntryRepository_Create_ExecFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO entries (text,timestamp) VALUES (?,?)")).
		WithArgs("a", sqlmock.AnyArg()).
		WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := repo.Create(testContext(), "a")
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Create_CommitFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO entries").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errBoom)

	_, err := repo.Create(testContext(), "a")
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrCommitingTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Create_BeginFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(errBoom)

	_, err := repo.Create(testContext(), "a")
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestEntryRepository_List_QueryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, text, timestamp FROM entries ORDER BY id ASC")).
		WillReturnError(errBoom)

	_, err := repo.List(testContext())
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestEntryRepository_List_ScanFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "text", "timestamp"}).
		AddRow("not-a-number", "a", time.Now())
	mock.ExpectQuery("SELECT id, text, timestamp FROM entries").WillReturnRows(rows)

	_, err := repo.List(testContext())
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrScanningRow)
}

func TestEntryRepository_Get_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, text, timestamp FROM entries WHERE id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "timestamp"}))

	_, err := repo.Get(testContext(), 9)
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestEntryRepository_Exists_FailureReportsAbsence(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM entries WHERE id = ? LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnError(errBoom)

	assert.False(t, repo.Exists(testContext(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Update_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE entries SET text = ? WHERE id = ?")).
		WithArgs("x", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Update(testContext(), 5, "x")
	require.ErrorIs(t, err, ErrEntryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Delete_ExecFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnError(errBoom)
	mock.ExpectRollback()

	err := repo.Delete(testContext(), 3)
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Count_Failure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM entries")).WillReturnError(errBoom)

	_, err := repo.Count(testContext())
	require.ErrorIs(t, err, ErrStorage)
}

func TestEntryRepository_Delete_BusyStoreFailsOnce(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries").WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectRollback()
	// a second attempt would consume these and leave the error unreported
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(testContext(), 1)
	require.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrEntryNotFound)
	assert.Error(t, mock.ExpectationsWereMet(), "the transaction must run exactly once")
}

func TestEntryRepository_Create_BusyBeginFailsOnce(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(sqlite3.Error{Code: sqlite3.ErrLocked})

	_, err := repo.Create(testContext(), "a")
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, ErrBeginningTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Update_ConstraintErrorIsStorageFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE entries").WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})
	mock.ExpectRollback()

	_, err := repo.Update(testContext(), 1, "b")
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}
