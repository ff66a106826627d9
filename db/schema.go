// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Supported dialects, named after their database/sql driver
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// rebind converts ? placeholders to $n for PostgreSQL
func rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// age and answers hold JSON text so legacy values survive unchanged;
// submitted_at is RFC 3339 text in both dialects.
const sqliteSchema = `
-- Viewers
CREATE TABLE IF NOT EXISTS viewer (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    age TEXT NOT NULL,
    sex TEXT NOT NULL,
    ethnicity TEXT NOT NULL,
    disabled TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);

-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    viewer_id TEXT NOT NULL REFERENCES viewer(id),
    name TEXT NOT NULL,
    answers TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_viewer_id ON survey(viewer_id);
`

const postgresSchema = `
-- Viewers
CREATE TABLE IF NOT EXISTS viewer (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    age TEXT NOT NULL,
    sex TEXT NOT NULL CHECK (sex IN ('Male', 'Female', 'Other')),
    ethnicity TEXT NOT NULL,
    disabled TEXT NOT NULL CHECK (disabled IN ('Yes', 'No')),
    submitted_at TEXT NOT NULL
);

-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    seq BIGSERIAL PRIMARY KEY,
    viewer_id TEXT NOT NULL REFERENCES viewer(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    answers TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_viewer_id ON survey(viewer_id);
`
