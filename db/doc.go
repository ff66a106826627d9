// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the SQL-backed record store.

# Opening

Open connects, pings and creates the schema in one step:

	s, err := db.Open(ctx, db.DialectSQLite, "survey.db")
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

Supported dialects are "sqlite" (modernc.org/sqlite, no cgo) and
"postgres" (github.com/lib/pq). Queries are written with ? placeholders
and rebound to $n for PostgreSQL.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - viewer: one row per intake submission
  - survey: one row per questionnaire submission

Both tables carry a seq column; rows are always read back ordered by seq,
which is the order they were appended.

	viewer 1──* survey (survey.viewer_id = viewer.id)

The viewer age and the survey answers are stored as JSON text, so values
read from legacy files keep their original form.

# Errors

SQLStore reports the same errors as the file store: ErrInvalidRecord for
rejected input, ErrNoViewerContext when a survey has no viewer to bind to,
ErrTypeMismatch on skipped survey rows and *store.CorruptionError for
unreadable columns.
*/
package db
