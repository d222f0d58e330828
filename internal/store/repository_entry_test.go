// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mdiary/internal/logger"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newSQLiteRepo(t *testing.T, path string, opts ...Option) EntryRepository {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), path, logger.Nop())
	require.NoError(t, err)

	repo := NewEntryRepository(db, logger.Nop(), opts...)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestEntryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := testContext()
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	for i, text := range []string{"a", "b", "c"} {
		e, err := repo.Create(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), e.ID)
		assert.Equal(t, text, e.Text)
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.ID)
	}
	assert.Equal(t, "a", entries[0].Text)
	assert.Equal(t, "c", entries[2].Text)
}

func TestEntryRepository_ListEmptyIsNonNil(t *testing.T) {
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	entries, err := repo.List(testContext())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestEntryRepository_IDsAreNeverReused(t *testing.T) {
	ctx := testContext()
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, text)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 3))

	e, err := repo.Create(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, int64(4), e.ID)
}

func TestEntryRepository_GetRoundTrip(t *testing.T) {
	ctx := testContext()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 600_000_000, time.UTC)
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"), WithClock(func() time.Time { return fixed }))

	created, err := repo.Create(ctx, "hello\nworld")
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "hello\nworld", got.Text)
	assert.True(t, got.Timestamp.Equal(fixed), "timestamp %v != %v", got.Timestamp, fixed)
	assert.Equal(t, time.UTC, got.Timestamp.Location())
}

func TestEntryRepository_CreateTruncatesToMicroseconds(t *testing.T) {
	ctx := testContext()
	stamp := time.Date(2025, 3, 4, 5, 6, 7, 123_456_789, time.UTC)
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"), WithClock(func() time.Time { return stamp }))

	created, err := repo.Create(ctx, "precise")
	require.NoError(t, err)
	want := time.Date(2025, 3, 4, 5, 6, 7, 123_456_000, time.UTC)
	assert.True(t, created.Timestamp.Equal(want), "created %v", created.Timestamp)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Timestamp.Equal(created.Timestamp), "stored %v != returned %v", got.Timestamp, created.Timestamp)
}

func TestEntryRepository_GetMissing(t *testing.T) {
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	_, err := repo.Get(testContext(), 42)
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEntryRepository_UpdateKeepsTimestamp(t *testing.T) {
	ctx := testContext()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := first
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"), WithClock(func() time.Time { return clock }))

	created, err := repo.Create(ctx, "draft")
	require.NoError(t, err)

	clock = first.Add(48 * time.Hour)
	updated, err := repo.Update(ctx, created.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.True(t, updated.Timestamp.Equal(first))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)
	assert.True(t, got.Timestamp.Equal(first))
}

func TestEntryRepository_UpdateMissing(t *testing.T) {
	ctx := testContext()
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	_, err := repo.Update(ctx, 7, "x")
	require.ErrorIs(t, err, ErrEntryNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEntryRepository_DeleteAndExists(t *testing.T) {
	ctx := testContext()
	repo := newSQLiteRepo(t, filepath.Join(t.TempDir(), "diary.db"))

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, text)
		require.NoError(t, err)
	}

	assert.True(t, repo.Exists(ctx, 2))
	require.NoError(t, repo.Delete(ctx, 2))
	assert.False(t, repo.Exists(ctx, 2))

	err := repo.Delete(ctx, 2)
	require.ErrorIs(t, err, ErrEntryNotFound)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, int64(3), entries[1].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEntryRepository_SurvivesReopen(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "nested", "diary.db")

	db, err := NewConnectSQLite(context.Background(), path, logger.Nop())
	require.NoError(t, err)
	repo := NewEntryRepository(db, logger.Nop())
	_, err = repo.Create(ctx, "persisted")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := newSQLiteRepo(t, path)
	got, err := reopened.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Text)
}
