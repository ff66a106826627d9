// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides wrappers for session screens.

# Screen Logging

Wrap screens with transition logging:

	screens[session.Intake] = middleware.WithLogging(session.Intake, h.Intake)

Logs screen entry at debug level, and completion (next screen,
duration_ms) or failure (error) when the screen returns.

# Admin Guard

RequireAdmin lets the wrapped screen run only after a successful login.
Otherwise it prints a notice and redirects to the login screen:

	middleware.RequireAdmin(h.Dashboard)
*/
package middleware
