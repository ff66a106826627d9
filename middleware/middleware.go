// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/sculpture-survey/session"
)

// WithLogging wraps a screen with transition logging
func WithLogging(name string, next session.Screen) session.Screen {
	return func(ctx context.Context, s *session.Session) (string, error) {
		start := time.Now()

		// Log screen entry
		slog.Debug("screen started",
			"screen", name,
			"admin", s.Admin,
		)

		// Call the next screen
		to, err := next(ctx, s)

		// Log completion
		duration := time.Since(start)
		if err != nil {
			slog.Warn("screen failed",
				"screen", name,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return to, err
		}
		slog.Info("screen completed",
			"screen", name,
			"next", to,
			"duration_ms", duration.Milliseconds(),
		)
		return to, nil
	}
}

// RequireAdmin sends the user to the login screen until they have logged in
func RequireAdmin(next session.Screen) session.Screen {
	return func(ctx context.Context, s *session.Session) (string, error) {
		if !s.Admin {
			s.Notify(session.LevelWarn, "Admin Only", "Please log in first.")
			return session.Login, nil
		}
		return next(ctx, s)
	}
}
