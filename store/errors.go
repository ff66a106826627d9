// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
)

var (
	ErrDataCorruption  = errors.New("data corruption")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNoViewerContext = errors.New("no viewer context")
	ErrInvalidRecord   = errors.New("invalid record")
)

// CorruptionError reports a data file (or table) that could not be parsed.
// It matches ErrDataCorruption with errors.Is.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s: malformed JSON: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() []error {
	return []error{ErrDataCorruption, e.Err}
}
