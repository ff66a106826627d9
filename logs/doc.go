// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logs builds the slog logger used as the process default.
// Records go to a text handler on the terminal and, when a log file is
// configured, to a JSON handler on that file, fanned out with slog-multi.
package logs
