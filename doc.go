// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Singing Sculpture survey.

The survey runs as a terminal session: visitors enter their details and
answer a short Likert questionnaire, and an admin can log in to review the
responses, see age and sex statistics, and export charts.

# Starting

The admin password is stored as a salted hash. Generate one first:

	go run . -hash-password 'secret'

then put the printed ADMIN_SALT and ADMIN_PASSWORD_HASH in the environment
or a .env file and start the session:

	go run . -data-dir ./data

# Configuration

Admin settings (without them the survey runs but admin login is disabled):

  - ADMIN_PASSWORD_HASH (-admin-hash): Admin password hash
  - ADMIN_SALT (-admin-salt): Salt the hash was made with

Optional settings:

  - DATA_DIR (-data-dir): Location of viewers_data.json and survey_data.json
  - STORE_TYPE (-store): json (default), sqlite or postgres
  - DATABASE_URL (-d): Database for the sqlite and postgres stores
  - QUESTIONNAIRE_FILE (-questions): YAML questionnaire
  - CHART_DIR (-chart-dir), LOG_LEVEL (-log-level), LOG_FILE (-log-file)

# Maintenance

	go run . -schema   # JSON Schemas of the data files
	go run . -repair   # merge a survey file made of concatenated arrays

# Architecture

  - router: Screen definitions and the run loop
  - handlers: Survey and admin screens
  - session: Terminal input/output and per-run state
  - middleware: Screen logging and the admin guard
  - store: JSON file store
  - db: SQLite/PostgreSQL store
  - stats: Aggregates over viewers and surveys
  - report: Tables, analysis text and charts
  - models: Records, questionnaire, validation, schemas
  - auth: Admin password hashing
  - logs: Logger setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
