// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/danielhkuo/sculpture-survey/models"
)

// Default file names, relative to the data directory
const (
	ViewersFile = "viewers_data.json"
	SurveyFile  = "survey_data.json"
)

// lockRetryDelay is how often a held file lock is polled
const lockRetryDelay = 25 * time.Millisecond

// FileStore keeps viewers and surveys in two JSON array files.
// Every append reads the whole file, appends in memory, and replaces the file
// atomically while holding an exclusive lock on "<file>.lock".
type FileStore struct {
	viewersPath string
	surveysPath string

	mu  sync.Mutex
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for the given viewer and survey files
func NewFileStore(viewersPath, surveysPath string) *FileStore {
	return &FileStore{
		viewersPath: viewersPath,
		surveysPath: surveysPath,
		now:         time.Now,
	}
}

// OpenDir creates a store using the default file names inside dir
func OpenDir(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return NewFileStore(filepath.Join(dir, ViewersFile), filepath.Join(dir, SurveyFile)), nil
}

func (s *FileStore) ViewersPath() string { return s.viewersPath }
func (s *FileStore) SurveysPath() string { return s.surveysPath }

func (s *FileStore) Close() error { return nil }

// AppendViewer handles the intake submission
func (s *FileStore) AppendViewer(ctx context.Context, v models.ViewerRecord) (models.ViewerRecord, error) {
	v, err := PrepareViewer(v, s.now())
	if err != nil {
		return models.ViewerRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = withFileLock(ctx, s.viewersPath, func() error {
		viewers, err := s.readViewers()
		if err != nil {
			return err
		}

		viewers = append(viewers, v)
		if err := writeJSONFileAtomic(s.viewersPath, viewers); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.viewersPath, err)
		}

		slog.Info("viewer stored", "viewer_id", v.ID, "path", s.viewersPath, "records", len(viewers))
		return nil
	})
	if err != nil {
		return models.ViewerRecord{}, err
	}
	return v, nil
}

// AppendSurvey stores answers under the most recently stored viewer
func (s *FileStore) AppendSurvey(ctx context.Context, answers models.Answers) (models.SurveyRecord, error) {
	return s.appendSurvey(ctx, answers, func(viewers []models.ViewerRecord) (models.ViewerRecord, error) {
		if len(viewers) == 0 {
			return models.ViewerRecord{}, fmt.Errorf("%w: no viewer has been stored", ErrNoViewerContext)
		}
		return viewers[len(viewers)-1], nil
	})
}

// AppendSurveyForViewer stores answers under the viewer with viewerID
func (s *FileStore) AppendSurveyForViewer(ctx context.Context, viewerID string, answers models.Answers) (models.SurveyRecord, error) {
	return s.appendSurvey(ctx, answers, func(viewers []models.ViewerRecord) (models.ViewerRecord, error) {
		viewer, ok := FindViewer(viewers, viewerID)
		if !ok {
			return models.ViewerRecord{}, fmt.Errorf("%w: viewer %q not found", ErrNoViewerContext, viewerID)
		}
		return viewer, nil
	})
}

// appendSurvey resolves the viewer and writes the survey while holding the
// viewer lock, then the survey lock.
func (s *FileStore) appendSurvey(ctx context.Context, answers models.Answers, resolve func([]models.ViewerRecord) (models.ViewerRecord, error)) (models.SurveyRecord, error) {
	if err := ValidateAnswers(answers); err != nil {
		return models.SurveyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rec models.SurveyRecord
	err := withFileLock(ctx, s.viewersPath, func() error {
		viewers, err := s.readViewers()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoViewerContext, err)
		}
		viewer, err := resolve(viewers)
		if err != nil {
			return err
		}

		rec = NewSurvey(viewer, answers, s.now())
		return withFileLock(ctx, s.surveysPath, func() error {
			return s.writeSurvey(rec)
		})
	})
	if err != nil {
		return models.SurveyRecord{}, err
	}
	return rec, nil
}

// writeSurvey appends rec to the survey file; the caller holds its lock
func (s *FileStore) writeSurvey(rec models.SurveyRecord) error {
	entry, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode survey: %w", err)
	}

	data, err := readFile(s.surveysPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.surveysPath, err)
	}

	// Existing entries are kept verbatim, including ones the dashboard skips
	entries, arrays, err := decodeArrays(s.surveysPath, data)
	if err != nil {
		return err
	}
	if arrays > 1 {
		slog.Warn("legacy survey file normalized", "path", s.surveysPath, "arrays", arrays)
	}

	entries = append(entries, entry)
	if err := writeJSONFileAtomic(s.surveysPath, entries); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.surveysPath, err)
	}

	slog.Info("survey stored", "viewer_id", rec.ViewerID, "path", s.surveysPath, "records", len(entries))
	return nil
}

// LoadViewers returns every stored viewer; a missing file is an empty store
func (s *FileStore) LoadViewers(ctx context.Context) ([]models.ViewerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.readViewers()
}

func (s *FileStore) readViewers() ([]models.ViewerRecord, error) {
	data, err := readFile(s.viewersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.viewersPath, err)
	}
	return decodeArray[models.ViewerRecord](s.viewersPath, data)
}

// LoadSurveys returns every usable survey response. Files holding several
// concatenated arrays are accepted; entries whose answers are not a mapping
// are reported in Skipped.
func (s *FileStore) LoadSurveys(ctx context.Context) (models.SurveyLoad, error) {
	if err := ctx.Err(); err != nil {
		return models.SurveyLoad{}, err
	}

	data, err := readFile(s.surveysPath)
	if err != nil {
		return models.SurveyLoad{}, fmt.Errorf("failed to read %s: %w", s.surveysPath, err)
	}

	entries, arrays, err := decodeArrays(s.surveysPath, data)
	if err != nil {
		return models.SurveyLoad{}, err
	}

	load := parseSurveys(entries)
	load.Legacy = arrays > 1
	if load.Legacy {
		slog.Warn("survey file holds concatenated arrays; run with -repair", "path", s.surveysPath, "arrays", arrays)
	}
	return load, nil
}

// RepairResult reports what RepairSurveys did
type RepairResult struct {
	Records  int
	Arrays   int
	Repaired bool
}

// RepairSurveys rewrites a survey file made of concatenated arrays as a
// single array. Entries are kept verbatim, in order.
func (s *FileStore) RepairSurveys(ctx context.Context) (RepairResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res RepairResult
	err := withFileLock(ctx, s.surveysPath, func() error {
		data, err := readFile(s.surveysPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", s.surveysPath, err)
		}

		entries, arrays, err := decodeArrays(s.surveysPath, data)
		if err != nil {
			return err
		}
		res.Records = len(entries)
		res.Arrays = arrays
		if arrays <= 1 {
			return nil
		}

		if entries == nil {
			entries = []json.RawMessage{}
		}
		if err := writeJSONFileAtomic(s.surveysPath, entries); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.surveysPath, err)
		}
		res.Repaired = true

		slog.Info("survey file repaired", "path", s.surveysPath, "arrays", arrays, "records", len(entries))
		return nil
	})
	return res, err
}

// storedSurvey is the on-disk survey shape before type checks
type storedSurvey struct {
	ViewerID    string          `json:"viewer_id"`
	Name        string          `json:"name"`
	Answers     json.RawMessage `json:"answers"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

func parseSurveys(entries []json.RawMessage) models.SurveyLoad {
	var load models.SurveyLoad
	for i, raw := range entries {
		rec, err := parseSurvey(raw)
		if err != nil {
			load.Skipped = append(load.Skipped, models.SkippedRecord{Index: i, Name: rec.Name, Err: err})
			continue
		}
		load.Records = append(load.Records, rec)
	}
	return load
}

func parseSurvey(raw json.RawMessage) (models.SurveyRecord, error) {
	var stored storedSurvey
	if err := json.Unmarshal(raw, &stored); err != nil {
		return models.SurveyRecord{Name: models.UnknownName}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}

	rec := models.SurveyRecord{
		ViewerID:    stored.ViewerID,
		Name:        stored.Name,
		SubmittedAt: stored.SubmittedAt,
	}
	if rec.Name == "" {
		rec.Name = models.UnknownName
	}

	if len(bytes.TrimSpace(stored.Answers)) == 0 {
		rec.Answers = models.Answers{}
		return rec, nil
	}
	answers, err := DecodeAnswers(stored.Answers)
	if err != nil {
		return rec, fmt.Errorf("answers for %s are not properly formatted: %w", rec.Name, err)
	}
	rec.Answers = answers
	return rec, nil
}

// withFileLock runs fn while holding an exclusive lock on path + ".lock"
func withFileLock(ctx context.Context, path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", path, err)
	}

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", path)
	}
	defer func() {
		if err := fl.Unlock(); err != nil {
			slog.Error("failed to unlock", "path", path, "error", err)
		}
	}()

	return fn()
}
