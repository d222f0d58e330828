// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const entriesTable = "entries"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	entryColumns = []string{"id", "text", "timestamp"}
)

func buildInsertEntryQuery(text string, ts time.Time) (string, []any, error) {
	return psql.Insert(entriesTable).
		Columns("text", "timestamp").
		Values(text, ts).
		ToSql()
}

func buildSelectAllEntriesQuery() (string, []any, error) {
	return psql.Select(entryColumns...).
		From(entriesTable).
		OrderBy("id ASC").
		ToSql()
}

func buildSelectEntryQuery(id int64) (string, []any, error) {
	return psql.Select(entryColumns...).
		From(entriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildEntryExistsQuery(id int64) (string, []any, error) {
	return psql.Select("1").
		From(entriesTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func buildUpdateEntryQuery(id int64, text string) (string, []any, error) {
	return psql.Update(entriesTable).
		Set("text", text).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteEntryQuery(id int64) (string, []any, error) {
	return psql.Delete(entriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildCountEntriesQuery() (string, []any, error) {
	return psql.Select("COUNT(*)").
		From(entriesTable).
		ToSql()
}
