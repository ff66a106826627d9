// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the screens of the survey session.

# Handler Types

Each handler is a struct with store, config and questionnaire dependencies:

  - SurveyHandler: landing menu, viewer intake, questionnaire
  - AdminHandler: login, dashboard, analysis, chart export

Handlers are created via constructor functions:

	surveyHandler := handlers.NewSurveyHandler(st, questionnaire)
	adminHandler := handlers.NewAdminHandler(st, cfg, questionnaire)

Every screen method has the session.Screen signature and returns the name
of the next screen.

# Survey Flow

	Landing → Intake → Questionnaire → Landing

Intake fills an IntakeForm; all fields are required and the age must be a
number greater than zero. Validation errors are shown as

	Please fill out all fields.
	Please enter the age in integers.

and the user may try again or go back. The stored viewer is kept on the
session and the questionnaire binds its answers to that viewer's ID.

# Admin Flow

	Landing → Login → Dashboard ⇄ Analysis
	                  Dashboard ⇄ Export

Login checks the configured hashed credentials; a blank username returns to
the landing screen. The dashboard lists all responses and per-question
statistics, and warns about entries that could not be read.

# Errors

Store errors never end the session. They are shown as notifications:

	*store.CorruptionError   → "JSON Error"
	store.ErrNoViewerContext → "No Viewer"
	anything else            → "Error"
*/
package handlers
