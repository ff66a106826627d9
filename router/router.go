// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/sculpture-survey/cliparse"
	"github.com/danielhkuo/sculpture-survey/handlers"
	"github.com/danielhkuo/sculpture-survey/middleware"
	"github.com/danielhkuo/sculpture-survey/models"
	"github.com/danielhkuo/sculpture-survey/session"
	"github.com/danielhkuo/sculpture-survey/store"
)

// Router maps screen names to screens
type Router struct {
	screens map[string]session.Screen
}

func NewRouter(st store.Store, cfg cliparse.Config, q models.Questionnaire) *Router {
	r := &Router{screens: make(map[string]session.Screen)}

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(st, q)
	adminHandler := handlers.NewAdminHandler(st, cfg, q)

	// Viewer screens (public)
	r.Handle(session.Landing, surveyHandler.Landing)
	r.Handle(session.Intake, surveyHandler.Intake)
	r.Handle(session.Questionnaire, surveyHandler.Questionnaire)

	// Admin screens
	r.Handle(session.Login, adminHandler.Login)
	r.Handle(session.Dashboard, middleware.RequireAdmin(adminHandler.Dashboard))
	r.Handle(session.Analysis, middleware.RequireAdmin(adminHandler.Analysis))
	r.Handle(session.Export, middleware.RequireAdmin(adminHandler.Export))

	return r
}

// Handle registers screen under name, wrapped with logging
func (r *Router) Handle(name string, screen session.Screen) {
	r.screens[name] = middleware.WithLogging(name, screen)
}

// Run shows screens starting from the landing screen until the user quits
// or the input ends. Screen errors are shown and the flow returns to the
// landing screen.
func (r *Router) Run(ctx context.Context, s *session.Session) error {
	current := session.Landing
	for current != session.Exit {
		if err := ctx.Err(); err != nil {
			return err
		}

		screen, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("unknown screen %q", current)
		}

		next, err := screen(ctx, s)
		switch {
		case errors.Is(err, session.ErrClosed):
			slog.Info("input closed", "screen", current)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			s.Notify(session.LevelError, "Error", fmt.Sprintf("An unexpected error occurred: %v", err))
			next = session.Landing
		}
		if next == "" {
			next = session.Landing
		}
		current = next
	}

	s.Println("Goodbye.")
	return nil
}
