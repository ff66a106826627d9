// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/sculpture-survey/models"
)

// Store persists viewer and survey records in append order
type Store interface {
	// AppendViewer validates and stores a viewer, assigning its ID and time
	AppendViewer(ctx context.Context, v models.ViewerRecord) (models.ViewerRecord, error)

	// AppendSurvey binds answers to the most recently stored viewer
	AppendSurvey(ctx context.Context, answers models.Answers) (models.SurveyRecord, error)

	// AppendSurveyForViewer binds answers to the viewer with the given ID
	AppendSurveyForViewer(ctx context.Context, viewerID string, answers models.Answers) (models.SurveyRecord, error)

	LoadViewers(ctx context.Context) ([]models.ViewerRecord, error)
	LoadSurveys(ctx context.Context) (models.SurveyLoad, error)

	Close() error
}

// PrepareViewer validates v and fills in the fields assigned on append
func PrepareViewer(v models.ViewerRecord, now time.Time) (models.ViewerRecord, error) {
	if err := v.Validate(); err != nil {
		return models.ViewerRecord{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.SubmittedAt.IsZero() {
		v.SubmittedAt = now.UTC()
	}
	return v, nil
}

// ValidateAnswers wraps answer validation errors as ErrInvalidRecord
func ValidateAnswers(answers models.Answers) error {
	if err := answers.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

// NewSurvey binds answers to a stored viewer
func NewSurvey(viewer models.ViewerRecord, answers models.Answers, now time.Time) models.SurveyRecord {
	return models.SurveyRecord{
		ViewerID:    viewer.ID,
		Name:        viewer.Name,
		Answers:     answers.Clone(),
		SubmittedAt: now.UTC(),
	}
}

// FindViewer returns the viewer with the given ID.
// Legacy records without an ID never match.
func FindViewer(viewers []models.ViewerRecord, id string) (models.ViewerRecord, bool) {
	if id == "" {
		return models.ViewerRecord{}, false
	}
	for i := len(viewers) - 1; i >= 0; i-- {
		if viewers[i].ID == id {
			return viewers[i], true
		}
	}
	return models.ViewerRecord{}, false
}

// DecodeAnswers parses a JSON object of answers. Non-string values are kept
// as their JSON text, so they count as invalid answers. Anything other than
// an object is ErrTypeMismatch.
func DecodeAnswers(data []byte) (models.Answers, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: answers are not a mapping", ErrTypeMismatch)
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}

	answers := make(models.Answers, len(values))
	for key, value := range values {
		var label string
		if err := json.Unmarshal(value, &label); err != nil {
			label = string(value)
		}
		answers[key] = label
	}
	return answers, nil
}
