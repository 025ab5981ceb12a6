// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// UserConfirmationService handles single-use account confirmation tokens.
type UserConfirmationService struct {
	users UserRepository
}

// NewUserConfirmationService creates a new UserConfirmationService.
func NewUserConfirmationService(users UserRepository) (*UserConfirmationService, error) {
	if users == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("users repository is required")
	}
	return &UserConfirmationService{users: users}, nil
}

// Issue generates a confirmation token for a user and stores its digest
// together with an optional redirect URL. The plaintext token is returned
// for delivery by an external collaborator.
func (s *UserConfirmationService) Issue(ctx context.Context, userID ulid.ULID, redirectURL string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", oops.Code("CONFIRM_USER_NOT_FOUND").Wrap(ErrNotFound)
		}
		return "", oops.Code("CONFIRM_ISSUE_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}

	token, digest, err := GenerateSecret()
	if err != nil {
		return "", oops.Code("CONFIRM_ISSUE_FAILED").
			With("operation", "generate confirmation token").
			Wrap(err)
	}

	if err := s.users.InitConfirmation(ctx, user.ID, digest, redirectURL); err != nil {
		return "", oops.Code("CONFIRM_ISSUE_FAILED").
			With("operation", "init confirmation").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	return token, nil
}

// Confirm redeems a confirmation token: the token is cleared and the
// confirmation timestamp set in one write. Returns the stored redirect
// URL, or empty when none was registered. An unknown or already-used
// token returns ErrNotFound.
func (s *UserConfirmationService) Confirm(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", oops.Code("CONFIRM_INVALID_INPUT").Errorf("confirmation token cannot be empty")
	}

	user, err := s.users.GetByConfirmationTokenHash(ctx, HashSecret(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", oops.Code("CONFIRM_TOKEN_NOT_FOUND").Wrap(ErrNotFound)
		}
		return "", oops.Code("CONFIRM_LOOKUP_FAILED").
			With("operation", "get user by confirmation token").
			Wrap(err)
	}

	if err := s.users.Confirm(ctx, user.ID, time.Now()); err != nil {
		return "", oops.Code("CONFIRM_FAILED").
			With("operation", "confirm user").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	var redirectURL string
	if user.ConfirmationRedirectURL != nil {
		redirectURL = *user.ConfirmationRedirectURL
	}
	return redirectURL, nil
}
