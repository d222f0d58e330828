// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/mdiary/internal/logger"
	"github.com/MKhiriev/mdiary/models"
)

// entryRepository is the SQLite-backed implementation of [EntryRepository].
// Every mutation runs in its own transaction; reads go straight to the
// connection.
type entryRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// Option customises an [EntryRepository] built by [NewEntryRepository].
type Option func(*entryRepository)

// WithClock replaces the wall clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(r *entryRepository) {
		r.now = now
	}
}

// NewEntryRepository constructs an [EntryRepository] on top of an open
// connection.
func NewEntryRepository(db *DB, logger *logger.Logger, opts ...Option) EntryRepository {
	r := &entryRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *entryRepository) Create(ctx context.Context, text string) (models.Entry, error) {
	log := logger.FromContext(ctx)

	ts := r.now().UTC().Truncate(time.Microsecond)
	query, args, err := buildInsertEntryQuery(text, ts)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Create").Msg("failed to build query")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var entry models.Entry
	err = r.inTx(ctx, "entryRepository.Create", func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "entryRepository.Create").Msg("failed to insert entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		id, idErr := res.LastInsertId()
		if idErr != nil {
			log.Err(idErr).Str("func", "entryRepository.Create").Msg("failed to read assigned id")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, idErr)
		}

		entry = models.Entry{ID: id, Text: text, Timestamp: ts}
		return nil
	})
	if err != nil {
		return models.Entry{}, err
	}

	log.Debug().Str("func", "entryRepository.Create").Int64("id", entry.ID).Msg("entry created")
	return entry, nil
}

func (r *entryRepository) List(ctx context.Context) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllEntriesQuery()
	if err != nil {
		log.Err(err).Str("func", "entryRepository.List").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.List").Msg("failed to execute query for listing entries")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if scanErr := rows.Scan(&e.ID, &e.Text, &e.Timestamp); scanErr != nil {
			log.Err(scanErr).Str("func", "entryRepository.List").Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, scanErr)
		}
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "entryRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, rowsErr)
	}

	return entries, nil
}

func (r *entryRepository) Get(ctx context.Context, id int64) (models.Entry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntryQuery(id)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Get").Int64("id", id).Msg("failed to build query")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	return r.scanOne(ctx, r.DB.QueryRowContext(ctx, query, args...), "entryRepository.Get", id)
}

func (r *entryRepository) Exists(ctx context.Context, id int64) bool {
	log := logger.FromContext(ctx)

	query, args, err := buildEntryExistsQuery(id)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Exists").Int64("id", id).Msg("failed to build query")
		return false
	}

	var one int
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Exists").Int64("id", id).Msg("failed to check entry existence, reporting absence")
		return false
	}

	return true
}

func (r *entryRepository) Update(ctx context.Context, id int64, text string) (models.Entry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(id, text)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Update").Int64("id", id).Msg("failed to build query")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}
	selectQuery, selectArgs, err := buildSelectEntryQuery(id)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Update").Int64("id", id).Msg("failed to build query")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var entry models.Entry
	err = r.inTx(ctx, "entryRepository.Update", func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "entryRepository.Update").Int64("id", id).Msg("failed to update entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrEntryNotFound
		}

		var scanErr error
		entry, scanErr = r.scanOne(ctx, tx.QueryRowContext(ctx, selectQuery, selectArgs...), "entryRepository.Update", id)
		return scanErr
	})
	if err != nil {
		return models.Entry{}, err
	}

	log.Debug().Str("func", "entryRepository.Update").Int64("id", id).Msg("entry updated")
	return entry, nil
}

func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(id)
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Delete").Int64("id", id).Msg("failed to build query")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	err = r.inTx(ctx, "entryRepository.Delete", func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "entryRepository.Delete").Int64("id", id).Msg("failed to delete entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Str("func", "entryRepository.Delete").Int64("id", id).Msg("entry deleted")
	return nil
}

func (r *entryRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountEntriesQuery()
	if err != nil {
		log.Err(err).Str("func", "entryRepository.Count").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBuildingSQLQuery, err)
	}

	var n int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", "entryRepository.Count").Msg("failed to count entries")
		return 0, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, err)
	}

	return n, nil
}

func (r *entryRepository) Close() error {
	if err := r.DB.Close(); err != nil {
		r.logger.Err(err).Str("func", "entryRepository.Close").Msg("failed to close database")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (r *entryRepository) scanOne(ctx context.Context, row *sql.Row, fn string, id int64) (models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.Text, &e.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, ErrEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Int64("id", id).Msg("failed to scan entry row")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, err)
	}
	e.Timestamp = e.Timestamp.UTC()

	return e, nil
}

// inTx runs body inside a single transaction. Any error returned by body
// rolls it back; errors other than [ErrEntryNotFound] are reported as
// [ErrStorage]. Nothing is retried.
func (r *entryRepository) inTx(ctx context.Context, fn string, body func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logFailure(ctx, fn, err).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = body(tx); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return err
		}
		if r.transient(err) {
			log.Warn().Str("func", fn).Bool("busy", true).Msg("store is locked by another process")
		}
		if errors.Is(err, ErrStorage) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logFailure(ctx, fn, commitErr).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w: %w", ErrStorage, ErrCommitingTransaction, commitErr)
	}

	return nil
}

// logFailure starts an error event for err, marking lock contention.
func (r *entryRepository) logFailure(ctx context.Context, fn string, err error) *zerolog.Event {
	return logger.FromContext(ctx).Err(err).Str("func", fn).Bool("busy", r.transient(err))
}

func (r *entryRepository) transient(err error) bool {
	if r.errorClassificator == nil {
		return false
	}
	return r.errorClassificator.Classify(err) == Transient
}
