// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by [EntryRepository] methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEntryNotFound is returned when an operation targets an id that has
	// no entry. The store is left unchanged.
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrStorage wraps every failure of the underlying database: a locked or
	// unreadable file, a failed statement, a failed commit. It is fatal for
	// the session.
	ErrStorage = errors.New("storage failure")
)

// Low-level database operation errors. They are always wrapped together
// with [ErrStorage].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the store fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a new
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when a selected row cannot be read into an
	// entry.
	ErrScanningRow = errors.New("failed to scan entry row")
)
