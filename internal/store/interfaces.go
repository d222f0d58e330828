// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists diary entries in a local SQLite file.
//
// The store is oblivious to encryption: it saves and returns whatever text it
// is handed. Ids are assigned on insert, start at 1, increase strictly and are
// never reused, even after the newest entry is deleted.
package store

import (
	"context"

	"github.com/MKhiriev/mdiary/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/entry_repository_mock.go -package=mock

// EntryRepository is the durable id-keyed collection of diary entries.
type EntryRepository interface {
	// Create inserts a new entry stamped with the current UTC time and
	// returns it with its assigned id.
	Create(ctx context.Context, text string) (models.Entry, error)

	// List returns every entry in ascending id order. An empty store yields
	// an empty, non-nil slice.
	List(ctx context.Context) ([]models.Entry, error)

	// Get returns the entry with the given id or [ErrEntryNotFound].
	Get(ctx context.Context, id int64) (models.Entry, error)

	// Exists reports whether an entry with the given id is present. Storage
	// failures are logged and reported as absence.
	Exists(ctx context.Context, id int64) bool

	// Update replaces the text of an existing entry. Its timestamp is kept.
	Update(ctx context.Context, id int64, text string) (models.Entry, error)

	// Delete removes the entry with the given id or returns [ErrEntryNotFound].
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying database handle.
	Close() error
}
