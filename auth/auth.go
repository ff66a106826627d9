// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoCredentials      = errors.New("admin credentials not configured")
)

// Credentials are the configured admin username and salted password hash
type Credentials struct {
	User         string
	PasswordHash string
	Salt         string
}

// GenerateSalt creates a random hex salt of the specified byte length
func GenerateSalt(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword creates an HMAC-SHA256 hash of password keyed by salt
// This is deterministic so it can be stored in config
func HashPassword(password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(password))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VerifyCredentials checks a login attempt against the configured credentials
func VerifyCredentials(user, password string, creds Credentials) error {
	if creds.PasswordHash == "" || creds.Salt == "" {
		return ErrNoCredentials
	}

	// Compare both fields so a wrong username costs the same as a wrong password
	userOK := hmac.Equal([]byte(user), []byte(creds.User))
	passOK := hmac.Equal([]byte(HashPassword(password, creds.Salt)), []byte(creds.PasswordHash))
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
