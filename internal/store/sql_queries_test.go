// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildInsertEntryQuery(t *testing.T) {
	ts := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildInsertEntryQuery("hello", ts)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO entries (text,timestamp) VALUES (?,?)", query)
	assert.Equal(t, []any{"hello", ts}, args)
}

func Test_buildSelectQueries(t *testing.T) {
	tests := []struct {
		name  string
		build func() (string, []any, error)
		query string
		args  []any
	}{
		{
			name:  "select all ordered by id",
			build: buildSelectAllEntriesQuery,
			query: "SELECT id, text, timestamp FROM entries ORDER BY id ASC",
		},
		{
			name:  "select one",
			build: func() (string, []any, error) { return buildSelectEntryQuery(3) },
			query: "SELECT id, text, timestamp FROM entries WHERE id = ?",
			args:  []any{int64(3)},
		},
		{
			name:  "exists",
			build: func() (string, []any, error) { return buildEntryExistsQuery(3) },
			query: "SELECT 1 FROM entries WHERE id = ? LIMIT 1",
			args:  []any{int64(3)},
		},
		{
			name:  "update keeps timestamp column untouched",
			build: func() (string, []any, error) { return buildUpdateEntryQuery(3, "new") },
			query: "UPDATE entries SET text = ? WHERE id = ?",
			args:  []any{"new", int64(3)},
		},
		{
			name:  "delete",
			build: func() (string, []any, error) { return buildDeleteEntryQuery(3) },
			query: "DELETE FROM entries WHERE id = ?",
			args:  []any{int64(3)},
		},
		{
			name:  "count",
			build: buildCountEntriesQuery,
			query: "SELECT COUNT(*) FROM entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.query, query)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}
