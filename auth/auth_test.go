// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateSalt(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salt, err := GenerateSalt(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateSalt() error = %v", err)
			}
			if len(salt) != tt.wantLen {
				t.Errorf("GenerateSalt() length = %d, want %d", len(salt), tt.wantLen)
			}
		})
	}

	// Two salts should be different
	s1, _ := GenerateSalt(16)
	s2, _ := GenerateSalt(16)
	if s1 == s2 {
		t.Error("GenerateSalt() produced duplicate salts (extremely unlikely)")
	}
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		salt     string
	}{
		{"standard", "hunter2", "secret-salt"},
		{"empty password", "", "salt"},
		{"empty salt", "hunter2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := HashPassword(tt.password, tt.salt)
			h2 := HashPassword(tt.password, tt.salt)

			if h1 != h2 {
				t.Errorf("HashPassword() not deterministic: %s != %s", h1, h2)
			}
			if strings.Contains(h1, "=") {
				t.Errorf("HashPassword() contains padding: %s", h1)
			}
			if strings.ContainsAny(h1, "+/") {
				t.Errorf("HashPassword() is not URL-safe: %s", h1)
			}
		})
	}

	if HashPassword("hunter2", "salt-a") == HashPassword("hunter2", "salt-b") {
		t.Error("HashPassword() ignores the salt")
	}
}

func TestVerifyCredentials(t *testing.T) {
	creds := Credentials{
		User:         "admin",
		PasswordHash: HashPassword("correct horse", "pepper"),
		Salt:         "pepper",
	}

	tests := []struct {
		name     string
		user     string
		password string
		creds    Credentials
		wantErr  error
	}{
		{"valid", "admin", "correct horse", creds, nil},
		{"wrong password", "admin", "battery staple", creds, ErrInvalidCredentials},
		{"wrong user", "root", "correct horse", creds, ErrInvalidCredentials},
		{"empty password", "admin", "", creds, ErrInvalidCredentials},
		{"not configured", "admin", "correct horse", Credentials{User: "admin"}, ErrNoCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyCredentials(tt.user, tt.password, tt.creds)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyCredentials() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
