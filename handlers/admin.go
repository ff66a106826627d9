// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/sculpture-survey/auth"
	"github.com/danielhkuo/sculpture-survey/cliparse"
	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/report"
	"github.com/danielhkuo/sculpture-survey/session"
	"github.com/danielhkuo/sculpture-survey/stats"
	"github.com/danielhkuo/sculpture-survey/store"
)

type AdminHandler struct {
	store store.Store
	cfg   cliparse.Config
	q     models.Questionnaire
	now   func() time.Time
}

func NewAdminHandler(st store.Store, cfg cliparse.Config, q models.Questionnaire) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg, q: q, now: time.Now}
}

// Login checks the admin credentials; a blank username goes back
func (h *AdminHandler) Login(ctx context.Context, s *session.Session) (string, error) {
	var form LoginForm
	var err error

	s.Println()
	s.Println("Admin Login")
	if form.User, err = s.Ask("Username (blank to go back)"); err != nil {
		return "", err
	}
	if form.User == "" {
		return session.Landing, nil
	}
	if form.Password, err = s.Ask("Password"); err != nil {
		return "", err
	}

	creds := auth.Credentials{
		User:         h.cfg.AdminUser,
		PasswordHash: h.cfg.AdminPasswordHash,
		Salt:         h.cfg.AdminSalt,
	}
	err = auth.VerifyCredentials(form.User, form.Password, creds)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Warn("admin login failed", "user", form.User)
		s.Notify(session.LevelError, "Login Failed", "Invalid credentials. Please try again.")
		return session.Login, nil
	case err != nil:
		s.Notify(session.LevelError, "Login Failed", err.Error())
		return session.Landing, nil
	}

	slog.Info("admin logged in", "user", form.User)
	s.Notify(session.LevelInfo, "Login Successful", "Welcome, Admin!")
	s.Admin = true
	return session.Dashboard, nil
}

// Dashboard shows every survey response and the per-question statistics
func (h *AdminHandler) Dashboard(ctx context.Context, s *session.Session) (string, error) {
	s.Println()
	s.Println("Admin Dashboard")

	load, err := h.store.LoadSurveys(ctx)
	if err != nil {
		notifyStoreError(s, err)
	} else {
		h.showSurveys(ctx, s, load)
	}

	i, err := s.Menu("Choose", []string{"Analysis", "Export Charts", "Log Out"})
	if err != nil {
		return "", err
	}
	switch i {
	case 0:
		return session.Analysis, nil
	case 1:
		return session.Export, nil
	default:
		s.Admin = false
		slog.Info("admin logged out")
		return session.Landing, nil
	}
}

func (h *AdminHandler) showSurveys(ctx context.Context, s *session.Session, load models.SurveyLoad) {
	for _, w := range report.SkippedWarnings(load.Skipped) {
		s.Notify(session.LevelWarn, "Invalid Data", w)
	}
	if load.Legacy {
		s.Notify(session.LevelWarn, "Legacy File", "The survey file holds several JSON arrays; run with -repair to merge them.")
	}
	if len(load.Records) == 0 {
		s.Notify(session.LevelInfo, "No Data", report.NoSurveyData)
		return
	}

	viewers, err := h.store.LoadViewers(ctx)
	if err != nil {
		slog.Warn("viewer count unavailable", "error", err)
	}
	if err := report.WriteOverview(s.Out(), len(viewers), load.Records, h.now()); err != nil {
		slog.Error("failed to write overview", "error", err)
	}
	s.Println()
	if err := report.WriteResponses(s.Out(), stats.Tabulate(h.q, load.Records)); err != nil {
		slog.Error("failed to write responses", "error", err)
	}
	s.Println()
	if err := report.WriteQuestionStats(s.Out(), stats.SummarizeAnswers(h.q, load.Records)); err != nil {
		slog.Error("failed to write question stats", "error", err)
	}
}

// Analysis shows descriptive statistics over the viewers
func (h *AdminHandler) Analysis(ctx context.Context, s *session.Session) (string, error) {
	viewers, err := h.store.LoadViewers(ctx)
	switch {
	case errors.Is(err, store.ErrDataCorruption):
		s.Notify(session.LevelError, "Error", "The data file is corrupted.")
		slog.Error("viewer file unreadable", "error", err)
		return session.Dashboard, nil
	case err != nil:
		notifyStoreError(s, err)
		return session.Dashboard, nil
	case len(viewers) == 0:
		s.Notify(session.LevelInfo, "No Data", report.NoViewerData)
		return session.Dashboard, nil
	}

	s.Println()
	s.Println("Analysis")
	if err := report.WriteAnalysis(s.Out(), stats.Summarize(viewers)); err != nil {
		return session.Dashboard, err
	}
	if _, err := s.Ask("Press Enter to return"); err != nil {
		return "", err
	}
	return session.Dashboard, nil
}

// Export writes PNG charts into the configured chart directory
func (h *AdminHandler) Export(ctx context.Context, s *session.Session) (string, error) {
	viewers, err := h.store.LoadViewers(ctx)
	if err != nil {
		notifyStoreError(s, err)
		return session.Dashboard, nil
	}
	load, err := h.store.LoadSurveys(ctx)
	if err != nil {
		notifyStoreError(s, err)
		return session.Dashboard, nil
	}

	paths, err := report.ExportCharts(h.cfg.ChartDir, viewers, stats.SummarizeAnswers(h.q, load.Records))
	switch {
	case errors.Is(err, report.ErrNoChartData):
		s.Notify(session.LevelInfo, "No Data", "Nothing to chart yet.")
	case err != nil:
		s.Notify(session.LevelError, "Export Failed", err.Error())
	default:
		s.Notify(session.LevelInfo, "Charts Exported", fmt.Sprintf("%d charts written to %s", len(paths), h.cfg.ChartDir))
	}
	return session.Dashboard, nil
}
