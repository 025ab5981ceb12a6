// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/keyrail/keyrail/pkg/observability"
)

// PasswordResetService handles the password reset flow. A user's reset
// sub-record has two states: idle (all three fields absent) and pending
// (all three present). Request moves idle to pending; Redeem moves
// pending back to idle. Reset tokens are single-use and carry no TTL;
// sent_at is stored so one can be added later.
type PasswordResetService struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(users UserRepository, hasher PasswordHasher) (*PasswordResetService, error) {
	if users == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("password hasher is required")
	}
	return &PasswordResetService{users: users, hasher: hasher}, nil
}

// Request initiates a password reset for a user by email
// (case-insensitive). On success the reset sub-record is populated in one
// write and the plaintext token is returned for delivery by an external
// collaborator; only its digest is stored. An unknown email returns
// ErrNotFound — reset initiation is not an enumeration-sensitive oracle
// in this design.
func (s *PasswordResetService) Request(ctx context.Context, email, redirectURL string) (*User, string, error) {
	if email == "" {
		return nil, "", oops.Code("RESET_INVALID_INPUT").Errorf("email is required")
	}
	if redirectURL == "" {
		return nil, "", oops.Code("RESET_INVALID_INPUT").Errorf("redirect URL is required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			observability.RecordResetRequest(observability.ResultNotFound)
			return nil, "", oops.Code("RESET_USER_NOT_FOUND").Wrap(ErrNotFound)
		}
		observability.RecordResetRequest(observability.ResultError)
		return nil, "", oops.Code("RESET_REQUEST_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	token, digest, err := GenerateSecret()
	if err != nil {
		observability.RecordResetRequest(observability.ResultError)
		return nil, "", oops.Code("RESET_REQUEST_FAILED").
			With("operation", "generate reset token").
			Wrap(err)
	}

	sentAt := time.Now()
	if err := s.users.InitPasswordReset(ctx, user.ID, digest, sentAt, redirectURL); err != nil {
		observability.RecordResetRequest(observability.ResultError)
		return nil, "", oops.Code("RESET_REQUEST_FAILED").
			With("operation", "init password reset").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	user.ResetTokenHash = &digest
	user.ResetSentAt = &sentAt
	user.ResetRedirectURL = &redirectURL

	observability.RecordResetRequest(observability.ResultOK)
	return user, token, nil
}

// RedeemLink resolves a reset token to its redirect destination without
// mutating any state. The issued token rides along as a reset_token query
// parameter, appended with `?` when the stored URL has no query string
// and `&` otherwise.
func (s *PasswordResetService) RedeemLink(ctx context.Context, token string) (string, error) {
	user, err := s.userByToken(ctx, token)
	if err != nil {
		return "", err
	}

	return buildRedirectURL(*user.ResetRedirectURL, token), nil
}

// Redeem completes a password reset: the new password's hash is written
// and all three reset fields are cleared in one atomic update, so a
// second redeem of the same token finds nothing and returns ErrNotFound.
func (s *PasswordResetService) Redeem(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return oops.Code("RESET_INVALID_INPUT").Errorf("new password cannot be empty")
	}

	user, err := s.userByToken(ctx, token)
	if err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	if err := s.users.CompletePasswordReset(ctx, user.ID, passwordHash); err != nil {
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "complete password reset").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	return nil
}

// userByToken resolves a presented reset token to its pending user.
func (s *PasswordResetService) userByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, oops.Code("RESET_INVALID_INPUT").Errorf("reset token cannot be empty")
	}

	user, err := s.users.GetByResetTokenHash(ctx, HashSecret(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(ErrNotFound)
		}
		return nil, oops.Code("RESET_LOOKUP_FAILED").
			With("operation", "get user by reset token").
			Wrap(err)
	}
	if user.ResetRedirectURL == nil {
		return nil, oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(ErrNotFound)
	}

	return user, nil
}

// buildRedirectURL appends the reset token as a query parameter.
func buildRedirectURL(base, token string) string {
	sep := "?"
	if u, err := url.Parse(base); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return base + sep + "reset_token=" + url.QueryEscape(token)
}
