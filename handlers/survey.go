// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/session"
	"github.com/danielhkuo/sculpture-survey/store"
)

const title = "Singing Sculpture Survey"

type SurveyHandler struct {
	store store.Store
	q     models.Questionnaire
}

func NewSurveyHandler(st store.Store, q models.Questionnaire) *SurveyHandler {
	return &SurveyHandler{store: st, q: q}
}

// Landing shows the start menu
func (h *SurveyHandler) Landing(ctx context.Context, s *session.Session) (string, error) {
	s.Println()
	s.Println(title)
	i, err := s.Menu("Choose", []string{"Start Survey", "Admin Login", "Quit"})
	if err != nil {
		return "", err
	}
	return []string{session.Intake, session.Login, session.Exit}[i], nil
}

// Intake collects and stores the viewer's demographic details
func (h *SurveyHandler) Intake(ctx context.Context, s *session.Session) (string, error) {
	for {
		form, err := h.readIntake(s)
		if err != nil {
			return "", err
		}

		rec, err := form.Record()
		if err != nil {
			s.Notify(session.LevelError, "Error", IntakeMessage(err))
			retry, err := askRetry(s)
			if err != nil || !retry {
				return session.Landing, err
			}
			continue
		}

		stored, err := h.store.AppendViewer(ctx, rec)
		if err != nil {
			notifyStoreError(s, err)
			return session.Landing, nil
		}

		s.Notify(session.LevelInfo, "Survey Submitted", "Thank you for completing the survey!")
		s.Viewer = &stored
		return session.Questionnaire, nil
	}
}

func (h *SurveyHandler) readIntake(s *session.Session) (IntakeForm, error) {
	var form IntakeForm
	var err error

	s.Println()
	s.Println("Viewer Details")
	if form.Name, err = s.Ask("Name"); err != nil {
		return form, err
	}
	if form.Age, err = s.Ask("Age"); err != nil {
		return form, err
	}

	sexes := make([]string, len(models.SexValues))
	for i, v := range models.SexValues {
		sexes[i] = string(v)
	}
	if form.Sex, err = pick(s, "Sex", sexes); err != nil {
		return form, err
	}
	if form.Ethnicity, err = pick(s, "Ethnicity", h.q.Ethnicities); err != nil {
		return form, err
	}

	disabled := make([]string, len(models.DisabledValues))
	for i, v := range models.DisabledValues {
		disabled[i] = string(v)
	}
	if form.Disabled, err = pick(s, "Disabled Status", disabled); err != nil {
		return form, err
	}
	return form, nil
}

// Questionnaire asks every question and stores the answers for the
// viewer from the preceding intake
func (h *SurveyHandler) Questionnaire(ctx context.Context, s *session.Session) (string, error) {
	if s.Viewer == nil {
		s.Notify(session.LevelError, "No Viewer", "Please complete the viewer details before the questionnaire.")
		return session.Landing, nil
	}

	for {
		form := NewQuestionnaireForm()
		s.Println()
		s.Printf("Questionnaire for %s\n", s.Viewer.Name)
		for i, question := range h.q.Questions {
			label, err := pick(s, fmt.Sprintf("%d. %s", i+1, question.Text), models.LikertLabels)
			if err != nil {
				return "", err
			}
			form.Set(question.Key, label)
		}

		answers, err := form.Submit(h.q)
		if err != nil {
			s.Notify(session.LevelError, "Error", "Please answer all questions before submitting.")
			retry, err := askRetry(s)
			if err != nil || !retry {
				return session.Landing, err
			}
			continue
		}

		rec, err := h.store.AppendSurveyForViewer(ctx, s.Viewer.ID, answers)
		if err != nil {
			notifyStoreError(s, err)
			return session.Landing, nil
		}

		slog.Debug("questionnaire submitted", "viewer_id", rec.ViewerID, "answers", len(rec.Answers))
		s.Notify(session.LevelInfo, "Thank You!", "Your feedback has been submitted.")
		s.Viewer = nil
		return session.Landing, nil
	}
}

// pick returns the chosen option, or "" when left blank
func pick(s *session.Session, prompt string, options []string) (string, error) {
	i, err := s.Choose(prompt, options)
	if err != nil || i < 0 {
		return "", err
	}
	return options[i], nil
}

func askRetry(s *session.Session) (bool, error) {
	i, err := s.Menu("Choose", []string{"Try again", "Back"})
	return i == 0, err
}

// notifyStoreError reports a store failure as a notification
func notifyStoreError(s *session.Session, err error) {
	var corrupt *store.CorruptionError
	switch {
	case errors.As(err, &corrupt):
		s.Notify(session.LevelError, "JSON Error", fmt.Sprintf("Error reading JSON file: %v", corrupt))
	case errors.Is(err, store.ErrNoViewerContext):
		s.Notify(session.LevelError, "No Viewer", "Could not find the viewer for these answers. Please start the survey again.")
	case errors.Is(err, store.ErrInvalidRecord):
		s.Notify(session.LevelError, "Error", err.Error())
	default:
		s.Notify(session.LevelError, "Error", fmt.Sprintf("An unexpected error occurred: %v", err))
	}
	slog.Error("store operation failed", "error", err)
}
