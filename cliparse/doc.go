// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Each flag falls back to an environment variable, then to a default:

	-data-dir     DATA_DIR             .
	-store        STORE_TYPE           json (json, sqlite, postgres)
	-d            DATABASE_URL         <data-dir>/survey.db for sqlite
	-admin-user   ADMIN_USER           admin
	-admin-hash   ADMIN_PASSWORD_HASH  (none; admin login disabled)
	-admin-salt   ADMIN_SALT           (none)
	-questions    QUESTIONNAIRE_FILE   built-in questions
	-chart-dir    CHART_DIR            <data-dir>/charts
	-log-level    LOG_LEVEL            warn
	-log-file     LOG_FILE             (none)

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing, when one exists.

# One-shot Modes

	-hash-password <pw>  print the hash of pw for ADMIN_PASSWORD_HASH
	-schema              print JSON Schemas for the data files
	-repair              rewrite a concatenated survey file as one array

# Validation

ParseFlags returns an error if:

  - the store type is unknown
  - the store is postgres and no DATABASE_URL is given
  - the log level is not debug, info, warn or error
*/
package cliparse
