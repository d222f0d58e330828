// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells a passing failure (the file was locked) from a
// lasting one. It only shapes logging; failed statements are never re-run.
type ErrorClassification int

const (
	// Permanent is the default for anything not known to be transient.
	Permanent ErrorClassification = iota

	// Transient marks lock contention with another connection or process.
	Transient
)

// ErrorClassificator sorts driver errors into [ErrorClassification]s.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify unwraps err to a sqlite3.Error and delegates to
// [ClassifySQLiteError]. Errors from anywhere else are [Permanent].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Permanent
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	return Permanent
}

// ClassifySQLiteError maps a sqlite3.Error to an [ErrorClassification].
//
// SQLITE_BUSY and SQLITE_LOCKED are transient: the busy timeout ran out
// while another process held the write lock. Any other code is permanent.
func ClassifySQLiteError(err sqlite3.Error) ErrorClassification {
	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Transient
	}

	return Permanent
}
