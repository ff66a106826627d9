// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the admin login for the dashboard.

# Password Hashes

Passwords are never stored. The configuration holds an HMAC-SHA256 hash of
the password keyed by a salt:

	hash := auth.HashPassword(password, salt)

The hash is URL-safe base64 encoded without padding. Since it's
deterministic, the same password and salt always produce the same hash, so
it can be generated once (see the -hash-password flag) and kept in the
environment as ADMIN_PASSWORD_HASH.

GenerateSalt creates a random hex salt when none is configured yet.

# Verification

	creds := auth.Credentials{User: cfg.AdminUser, PasswordHash: cfg.AdminPasswordHash, Salt: cfg.AdminSalt}
	if err := auth.VerifyCredentials(user, password, creds); err != nil {
		// ErrInvalidCredentials or ErrNoCredentials
	}

Comparisons use hmac.Equal (constant time).
*/
package auth
