// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/keyrail/keyrail/pkg/observability"
)

// Rotation retry policy. Two concurrent logins for the same user/API-key
// pair can both observe "no existing token"; the store's partial unique
// index rejects the loser, which then re-runs the revoke-then-create
// sequence.
const (
	rotateMaxRetries = 3
	rotateRetryDelay = 10 * time.Millisecond
)

// Service provides login, logout, and access-token rotation.
type Service struct {
	users  UserRepository
	tokens AccessTokenRepository
	hasher PasswordHasher
}

// NewAuthService creates a new Service.
func NewAuthService(users UserRepository, tokens AccessTokenRepository, hasher PasswordHasher) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("users repository is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("tokens repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("password hasher is required")
	}
	return &Service{users: users, tokens: tokens, hasher: hasher}, nil
}

// Login authenticates a user by email and password against a verified API
// key, rotates the access token for the (user, API key) pair, and returns
// the new token with its plaintext secret. The plaintext is never stored
// or logged; losing it means rotating again.
//
// An unknown email returns ErrNotFound; a wrong password returns
// ErrInvalidCredentials. Login is not an enumeration-sensitive surface in
// this design, unlike header verification.
func (s *Service) Login(ctx context.Context, email, password string, apiKey *APIKey) (*AccessToken, string, error) {
	if email == "" || password == "" {
		return nil, "", oops.Code("AUTH_INVALID_INPUT").Errorf("email and password are required")
	}
	if apiKey == nil {
		return nil, "", oops.Code("AUTH_INVALID_INPUT").Errorf("verified API key is required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", oops.Code("AUTH_USER_NOT_FOUND").Wrap(ErrNotFound)
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !valid {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Upgrade legacy password hashes on successful login. Best effort:
	// login succeeds even if the rewrite fails.
	if s.hasher.NeedsUpgrade(user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			_ = s.users.UpdatePassword(ctx, user.ID, newHash) //nolint:errcheck // Best effort
		}
	}

	return s.rotate(ctx, user.ID, apiKey.ID)
}

// Logout revokes an access token. Revoking an already-revoked token is a
// no-op, so logout is idempotent.
func (s *Service) Logout(ctx context.Context, tokenID ulid.ULID) error {
	if err := s.tokens.SoftDelete(ctx, tokenID); err != nil {
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "soft delete access token").
			With("token_id", tokenID.String()).
			Wrap(err)
	}
	return nil
}

// rotate revokes any live token for the pair and issues a fresh one, so
// at most one session is live per (user, API key). A uniqueness conflict
// on insert means another rotation won the race; the sequence retries
// from the revoke step.
func (s *Service) rotate(ctx context.Context, userID, apiKeyID ulid.ULID) (*AccessToken, string, error) {
	var (
		token  *AccessToken
		secret string
	)

	backoff := retry.WithMaxRetries(rotateMaxRetries, retry.NewConstant(rotateRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		prev, err := s.tokens.GetActive(ctx, userID, apiKeyID)
		if err == nil {
			if err := s.tokens.SoftDelete(ctx, prev.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		plaintext, digest, err := GenerateSecret()
		if err != nil {
			return err
		}

		fresh, err := NewAccessToken(userID, apiKeyID, digest)
		if err != nil {
			return err
		}

		if err := s.tokens.Create(ctx, fresh); err != nil {
			if errors.Is(err, ErrConflict) {
				return retry.RetryableError(err)
			}
			return err
		}

		token = fresh
		secret = plaintext
		return nil
	})
	if err != nil {
		return nil, "", oops.Code("AUTH_ROTATE_FAILED").
			With("operation", "rotate access token").
			With("user_id", userID.String()).
			With("api_key_id", apiKeyID.String()).
			Wrap(err)
	}

	observability.RecordTokenRotation()
	return token, secret, nil
}
