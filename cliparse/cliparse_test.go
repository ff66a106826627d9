// cliparse/cliparse_test.go
package cliparse

import (
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every variable ParseFlags reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_DIR", "STORE_TYPE", "DATABASE_URL",
		"ADMIN_USER", "ADMIN_PASSWORD_HASH", "ADMIN_SALT",
		"QUESTIONNAIRE_FILE", "CHART_DIR", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/srv/survey")
	t.Setenv("ADMIN_USER", "curator")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")
	t.Setenv("ADMIN_SALT", "salt")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DataDir != "/srv/survey" {
		t.Errorf("expected data dir /srv/survey, got %s", cfg.DataDir)
	}
	if cfg.ViewersFile != filepath.Join("/srv/survey", "viewers_data.json") {
		t.Errorf("unexpected viewers file %s", cfg.ViewersFile)
	}
	if cfg.SurveyFile != filepath.Join("/srv/survey", "survey_data.json") {
		t.Errorf("unexpected survey file %s", cfg.SurveyFile)
	}
	if cfg.AdminUser != "curator" {
		t.Errorf("expected admin user curator, got %s", cfg.AdminUser)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-admin-hash", "h", "-admin-salt", "s"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DataDir != "." {
		t.Errorf("expected data dir ., got %s", cfg.DataDir)
	}
	if cfg.StoreType != StoreJSON {
		t.Errorf("expected json store, got %s", cfg.StoreType)
	}
	if cfg.AdminUser != "admin" {
		t.Errorf("expected admin user admin, got %s", cfg.AdminUser)
	}
	if cfg.ChartDir != "charts" {
		t.Errorf("expected chart dir charts, got %s", cfg.ChartDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.LogLevel)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/from/env")
	t.Setenv("ADMIN_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-data-dir", "/from/cli", "-admin-hash", "h", "-admin-salt", "cli-salt"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.DataDir != "/from/cli" {
		t.Errorf("CLI should override env: expected /from/cli, got %s", cfg.DataDir)
	}
	if cfg.AdminSalt != "cli-salt" {
		t.Errorf("CLI should override env: expected cli-salt, got %s", cfg.AdminSalt)
	}
}

func TestParseFlags_StoreType(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantURL string
		wantErr string
	}{
		{
			name:    "sqlite default path",
			args:    []string{"-store", "sqlite", "-data-dir", "/data"},
			wantURL: filepath.Join("/data", "survey.db"),
		},
		{
			name:    "sqlite explicit path",
			args:    []string{"-store", "sqlite", "-d", "other.db"},
			wantURL: "other.db",
		},
		{
			name:    "postgres requires url",
			args:    []string{"-store", "postgres"},
			wantErr: "database URL required",
		},
		{
			name:    "postgres",
			args:    []string{"-store", "POSTGRES", "-d", "postgres://localhost/survey"},
			wantURL: "postgres://localhost/survey",
		},
		{
			name:    "unknown",
			args:    []string{"-store", "mongo"},
			wantErr: "invalid store type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			args := append([]string{"-admin-hash", "h", "-admin-salt", "s"}, tt.args...)

			cfg, err := ParseFlags(args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.DatabaseURL != tt.wantURL {
				t.Errorf("expected database URL %s, got %s", tt.wantURL, cfg.DatabaseURL)
			}
		})
	}
}

func TestParseFlags_OptionalSecrets(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no credentials", nil},
		{"missing hash", []string{"-admin-salt", "s"}},
		{"missing salt", []string{"-admin-hash", "h"}},
		{"hash-password mode", []string{"-hash-password", "secret"}},
		{"schema mode", []string{"-schema"}},
		{"repair mode", []string{"-repair"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseFlags(tt.args); err != nil {
				t.Errorf("ParseFlags() error = %v", err)
			}
		})
	}
}

func TestParseFlags_InvalidLogLevel(t *testing.T) {
	clearEnv(t)

	_, err := ParseFlags([]string{"-admin-hash", "h", "-admin-salt", "s", "-log-level", "loud"})
	if err == nil {
		t.Error("expected error for invalid log level")
	}
}
