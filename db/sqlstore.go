// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/store"
)

// SQLStore keeps viewers and surveys in the viewer and survey tables.
// Insertion order is the seq column.
type SQLStore struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

var _ store.Store = (*SQLStore)(nil)

// Open connects to the database, verifies the connection and creates the schema
func Open(ctx context.Context, dialect, dsn string) (*SQLStore, error) {
	if dialect != DialectSQLite && dialect != DialectPostgres {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dialect == DialectSQLite {
		// One writer at a time; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := CreateSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("Database schema ready", "dialect", dialect)
	return New(conn, dialect), nil
}

// New wraps an existing connection whose schema is already in place
func New(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect, now: time.Now}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// AppendViewer inserts a validated viewer
func (s *SQLStore) AppendViewer(ctx context.Context, v models.ViewerRecord) (models.ViewerRecord, error) {
	v, err := store.PrepareViewer(v, s.now())
	if err != nil {
		return models.ViewerRecord{}, err
	}

	age, err := json.Marshal(v.Age)
	if err != nil {
		return models.ViewerRecord{}, fmt.Errorf("failed to encode age: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO viewer (id, name, age, sex, ethnicity, disabled, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), v.ID, v.Name, string(age), string(v.Sex), v.Ethnicity, string(v.Disabled), formatTime(v.SubmittedAt))
	if err != nil {
		return models.ViewerRecord{}, fmt.Errorf("failed to insert viewer: %w", err)
	}

	slog.Info("viewer stored", "viewer_id", v.ID, "dialect", s.dialect)
	return v, nil
}

// AppendSurvey stores answers under the most recently inserted viewer
func (s *SQLStore) AppendSurvey(ctx context.Context, answers models.Answers) (models.SurveyRecord, error) {
	if err := store.ValidateAnswers(answers); err != nil {
		return models.SurveyRecord{}, err
	}

	return s.insertSurvey(ctx, answers, func(tx *sql.Tx) (string, string, error) {
		var id, name string
		err := tx.QueryRowContext(ctx, `SELECT id, name FROM viewer ORDER BY seq DESC LIMIT 1`).Scan(&id, &name)
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("%w: no viewer has been stored", store.ErrNoViewerContext)
		}
		return id, name, err
	})
}

// AppendSurveyForViewer stores answers under the viewer with viewerID
func (s *SQLStore) AppendSurveyForViewer(ctx context.Context, viewerID string, answers models.Answers) (models.SurveyRecord, error) {
	if err := store.ValidateAnswers(answers); err != nil {
		return models.SurveyRecord{}, err
	}

	return s.insertSurvey(ctx, answers, func(tx *sql.Tx) (string, string, error) {
		var name string
		err := tx.QueryRowContext(ctx, s.q(`SELECT name FROM viewer WHERE id = ?`), viewerID).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("%w: viewer %q not found", store.ErrNoViewerContext, viewerID)
		}
		return viewerID, name, err
	})
}

// insertSurvey resolves the owning viewer and inserts in one transaction
func (s *SQLStore) insertSurvey(ctx context.Context, answers models.Answers, resolve func(*sql.Tx) (string, string, error)) (models.SurveyRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.SurveyRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	viewerID, name, err := resolve(tx)
	if err != nil {
		if errors.Is(err, store.ErrNoViewerContext) {
			return models.SurveyRecord{}, err
		}
		return models.SurveyRecord{}, fmt.Errorf("%w: %w", store.ErrNoViewerContext, err)
	}

	rec := store.NewSurvey(models.ViewerRecord{ID: viewerID, Name: name}, answers, s.now())
	encoded, err := json.Marshal(rec.Answers)
	if err != nil {
		return models.SurveyRecord{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO survey (viewer_id, name, answers, submitted_at)
		VALUES (?, ?, ?, ?)
	`), rec.ViewerID, rec.Name, string(encoded), formatTime(rec.SubmittedAt))
	if err != nil {
		return models.SurveyRecord{}, fmt.Errorf("failed to insert survey: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.SurveyRecord{}, fmt.Errorf("failed to commit survey: %w", err)
	}

	slog.Info("survey stored", "viewer_id", rec.ViewerID, "dialect", s.dialect)
	return rec, nil
}

// LoadViewers returns every viewer in insertion order
func (s *SQLStore) LoadViewers(ctx context.Context) ([]models.ViewerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, sex, ethnicity, disabled, submitted_at
		FROM viewer
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query viewers: %w", err)
	}
	defer rows.Close()

	var viewers []models.ViewerRecord
	for rows.Next() {
		var v models.ViewerRecord
		var age, sex, disabled, submittedAt string
		if err := rows.Scan(&v.ID, &v.Name, &age, &sex, &v.Ethnicity, &disabled, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan viewer: %w", err)
		}
		if err := json.Unmarshal([]byte(age), &v.Age); err != nil {
			return nil, &store.CorruptionError{Path: "viewer.age", Err: err}
		}
		v.Sex = models.Sex(sex)
		v.Disabled = models.Disabled(disabled)
		if v.SubmittedAt, err = parseTime(submittedAt); err != nil {
			return nil, &store.CorruptionError{Path: "viewer.submitted_at", Err: err}
		}
		viewers = append(viewers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate viewers: %w", err)
	}

	return viewers, nil
}

// LoadSurveys returns every survey in insertion order.
// Rows whose answers are not a JSON object are reported in Skipped.
func (s *SQLStore) LoadSurveys(ctx context.Context) (models.SurveyLoad, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT viewer_id, name, answers, submitted_at
		FROM survey
		ORDER BY seq
	`)
	if err != nil {
		return models.SurveyLoad{}, fmt.Errorf("failed to query surveys: %w", err)
	}
	defer rows.Close()

	var load models.SurveyLoad
	for i := 0; rows.Next(); i++ {
		var rec models.SurveyRecord
		var answers, submittedAt string
		if err := rows.Scan(&rec.ViewerID, &rec.Name, &answers, &submittedAt); err != nil {
			return models.SurveyLoad{}, fmt.Errorf("failed to scan survey: %w", err)
		}
		if rec.Name == "" {
			rec.Name = models.UnknownName
		}
		if rec.Answers, err = store.DecodeAnswers([]byte(answers)); err != nil {
			load.Skipped = append(load.Skipped, models.SkippedRecord{
				Index: i,
				Name:  rec.Name,
				Err:   fmt.Errorf("answers for %s are not properly formatted: %w", rec.Name, err),
			})
			continue
		}
		if rec.SubmittedAt, err = parseTime(submittedAt); err != nil {
			return models.SurveyLoad{}, &store.CorruptionError{Path: "survey.submitted_at", Err: err}
		}
		load.Records = append(load.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.SurveyLoad{}, fmt.Errorf("failed to iterate surveys: %w", err)
	}

	return load, nil
}

func (s *SQLStore) q(query string) string {
	return rebind(s.dialect, query)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
