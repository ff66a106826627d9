// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/sculpture-survey/auth"
	"github.com/danielhkuo/sculpture-survey/cliparse"
	"github.com/danielhkuo/sculpture-survey/models"
)

// Test admin credentials, hashed into GetTestConfig
const (
	AdminUser     = "admin"
	AdminPassword = "test-password"
	AdminSalt     = "test-admin-salt"
)

// GetTestConfig returns a standard test configuration rooted at a temp dir
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	dir := t.TempDir()
	return cliparse.Config{
		DataDir:           dir,
		ViewersFile:       filepath.Join(dir, "viewers_data.json"),
		SurveyFile:        filepath.Join(dir, "survey_data.json"),
		StoreType:         cliparse.StoreJSON,
		AdminUser:         AdminUser,
		AdminPasswordHash: auth.HashPassword(AdminPassword, AdminSalt),
		AdminSalt:         AdminSalt,
		ChartDir:          filepath.Join(dir, "charts"),
		LogLevel:          "error",
	}
}

// NewViewer builds a valid viewer record
func NewViewer(name string, age float64, sex models.Sex) models.ViewerRecord {
	return models.ViewerRecord{
		Name:      name,
		Age:       models.NewAge(age),
		Sex:       sex,
		Ethnicity: "Asian",
		Disabled:  models.DisabledNo,
	}
}

// FullAnswers answers every default question with label
func FullAnswers(label string) models.Answers {
	answers := models.Answers{}
	for _, q := range models.DefaultQuestionnaire().Questions {
		answers[q.Key] = label
	}
	return answers
}

// WriteFile creates path with content, failing the test on error
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

// AssertNoFile fails the test if path exists
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	}
}
