// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

// Package auth provides credential issuance, parsing, and verification
// for Keyrail.
//
// # Domain Types
//
// Domain types (APIKey, AccessToken, User) should be created using their
// respective constructors:
//   - NewAPIKey - creates an APIKey with a validated secret digest
//   - NewAccessToken - creates an AccessToken bound to a user and API key
//   - NewUser - creates a User with validated email and password hash
//
// Direct struct initialization bypasses validation and may create invalid
// state. Repository implementations receive pre-validated types from these
// constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Authenticator - verifies Authorization-header credentials
//   - Service - login, logout, access-token rotation
//   - PasswordResetService - password reset flow
//   - UserConfirmationService - account confirmation flow
//
// Services are created with New*Service constructors that validate
// dependencies.
//
// Every credential secret is persisted only as a one-way digest. The
// plaintext is returned to the caller exactly once, at issuance.
package auth
