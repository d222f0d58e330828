// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	"github.com/MKhiriev/mdiary/internal/logger"
	"github.com/MKhiriev/mdiary/migrations"
)

// DB is an open store connection with its schema applied.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an open connection. It does not migrate.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
