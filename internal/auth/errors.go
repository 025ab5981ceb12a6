// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert collides with a uniqueness
// constraint, such as two live access tokens for the same user/API-key pair.
var ErrConflict = errors.New("conflict")

// ErrUnauthenticated is the single outcome for every header-verification
// failure. Missing, malformed, unknown, inactive, expired, and
// wrong-secret credentials are deliberately indistinguishable to callers.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidCredentials is returned by Login when the password does not
// match. Unlike header verification, login distinguishes an unknown email
// (ErrNotFound) from a bad password.
var ErrInvalidCredentials = errors.New("invalid credentials")
