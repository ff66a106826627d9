package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store backends
const (
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	DataDir     string
	ViewersFile string
	SurveyFile  string
	StoreType   string
	DatabaseURL string

	AdminUser         string
	AdminPasswordHash string
	AdminSalt         string

	QuestionnaireFile string
	ChartDir          string

	LogLevel string
	LogFile  string

	// One-shot modes; the session flow is not started
	HashPassword string
	PrintSchema  bool
	Repair       bool
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("sculpture-survey", flag.ContinueOnError)

	// Storage (can be CLI args or env)
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory holding the JSON data files")
	fs.StringVar(&cfg.StoreType, "store", "", "Store type (json, sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminUser, "admin-user", "", "Admin username")
	fs.StringVar(&cfg.AdminPasswordHash, "admin-hash", "", "Admin password hash (prefer env)")
	fs.StringVar(&cfg.AdminSalt, "admin-salt", "", "Admin password salt (prefer env)")

	fs.StringVar(&cfg.QuestionnaireFile, "questions", "", "Questionnaire YAML file")
	fs.StringVar(&cfg.ChartDir, "chart-dir", "", "Directory for exported charts")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this file")

	fs.StringVar(&cfg.HashPassword, "hash-password", "", "Print the hash of this password and exit")
	fs.BoolVar(&cfg.PrintSchema, "schema", false, "Print the data file JSON Schemas and exit")
	fs.BoolVar(&cfg.Repair, "repair", false, "Rewrite a concatenated survey file as one array and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables, then defaults
	cfg.DataDir = fallback(cfg.DataDir, "DATA_DIR", ".")
	cfg.ViewersFile = filepath.Join(cfg.DataDir, "viewers_data.json")
	cfg.SurveyFile = filepath.Join(cfg.DataDir, "survey_data.json")

	cfg.StoreType = strings.ToLower(fallback(cfg.StoreType, "STORE_TYPE", StoreJSON))
	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	switch cfg.StoreType {
	case StoreJSON:
	case StoreSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = filepath.Join(cfg.DataDir, "survey.db")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("invalid store type %q (want json, sqlite or postgres)", cfg.StoreType)
	}

	cfg.AdminUser = fallback(cfg.AdminUser, "ADMIN_USER", "admin")
	cfg.AdminPasswordHash = fallback(cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH", "")
	cfg.AdminSalt = fallback(cfg.AdminSalt, "ADMIN_SALT", "")

	cfg.QuestionnaireFile = fallback(cfg.QuestionnaireFile, "QUESTIONNAIRE_FILE", "")
	cfg.ChartDir = fallback(cfg.ChartDir, "CHART_DIR", filepath.Join(cfg.DataDir, "charts"))

	cfg.LogLevel = strings.ToLower(fallback(cfg.LogLevel, "LOG_LEVEL", "warn"))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	cfg.LogFile = fallback(cfg.LogFile, "LOG_FILE", "")

	return cfg, nil
}

func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
