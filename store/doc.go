// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists viewer and survey records.

# Files

FileStore keeps two JSON array files (defaults: viewers_data.json and
survey_data.json). Each append is a whole-file read-modify-write:

 1. take an exclusive lock on "<file>.lock"
 2. read the file (missing or zero-length means empty)
 3. append the record in memory
 4. write a temp file in the same directory and rename it over the original

Writers always produce one well-formed, 4-space indented array.

# Legacy Survey Files

Older writers appended whole arrays to survey_data.json, leaving
"[...][...]". LoadSurveys reads every array in order and sets
SurveyLoad.Legacy; RepairSurveys rewrites such a file as a single array.

# Errors

	ErrDataCorruption   malformed JSON (*CorruptionError carries the path)
	ErrTypeMismatch     a survey entry whose answers are not a mapping (skipped)
	ErrNoViewerContext  a survey with no stored viewer to bind to
	ErrInvalidRecord    a record that fails presence/type checks

A missing file is never an error.

# Viewer Binding

AppendSurvey binds answers to the last stored viewer. AppendSurveyForViewer
binds them to an explicit viewer ID, which is what the session flow uses.
*/
package store
