// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/mdiary/internal/logger"
)

// NewConnectSQLite opens the store file at path, creating it and its parent
// directory when they do not exist, and applies the schema.
//
// The connection runs in rollback-journal mode with FULL synchronous writes so
// that a committed entry survives a crash, and a busy timeout so a second
// process gets a clean [ErrStorage] instead of a lock storm.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error creating database file")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("%w: error opening connection to DB: %w", ErrStorage, err)
	}
	// a single writer keeps sqlite from returning SQLITE_BUSY to ourselves
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	db := NewDB(conn, log)

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error migrating database")
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return db, nil
}

func sqliteDSN(path string) string {
	params := url.Values{}
	params.Set("_journal_mode", "DELETE")
	params.Set("_synchronous", "FULL")
	params.Set("_busy_timeout", "5000")
	params.Set("_txlock", "immediate")

	return path + "?" + params.Encode()
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if err := os.MkdirAll(filepath.Dir(dbFile), 0o700); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.OpenFile(dbFile, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
