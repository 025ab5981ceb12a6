// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// emailRegex is a lightweight sanity check, not full RFC 5322 validation.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is an end-user account. The reset fields form an ephemeral
// sub-record: all three are set together when a reset is requested and
// cleared together when it is redeemed. The confirmation fields follow
// the same single-use discipline.
type User struct {
	ID           ulid.ULID
	Email        string
	PasswordHash string

	ResetTokenHash   *string
	ResetSentAt      *time.Time
	ResetRedirectURL *string

	ConfirmationTokenHash   *string
	ConfirmationRedirectURL *string
	ConfirmedAt             *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a validated User with a lowercased email.
func NewUser(email, passwordHash string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("USER_INVALID_HASH").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           ulid.Make(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ResetPending returns true when a password reset has been requested and
// not yet redeemed.
func (u *User) ResetPending() bool {
	return u.ResetTokenHash != nil && u.ResetSentAt != nil && u.ResetRedirectURL != nil
}

// Confirmed returns true once the account has been confirmed.
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}

// ValidateEmail validates an email address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("USER_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("USER_INVALID_EMAIL").
			With("email", email).
			Errorf("email is not a valid address")
	}
	return nil
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByResetTokenHash retrieves the user holding a pending reset
	// with the given token digest.
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*User, error)

	// GetByConfirmationTokenHash retrieves the user holding a pending
	// confirmation with the given token digest.
	GetByConfirmationTokenHash(ctx context.Context, tokenHash string) (*User, error)

	// UpdatePassword updates only the password hash for a user.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error

	// InitPasswordReset populates the reset sub-record in one write.
	InitPasswordReset(ctx context.Context, id ulid.ULID, tokenHash string, sentAt time.Time, redirectURL string) error

	// CompletePasswordReset sets the new password hash and clears the
	// reset sub-record in one write.
	CompletePasswordReset(ctx context.Context, id ulid.ULID, passwordHash string) error

	// InitConfirmation populates the confirmation sub-record in one write.
	InitConfirmation(ctx context.Context, id ulid.ULID, tokenHash string, redirectURL string) error

	// Confirm clears the confirmation token and stamps confirmed_at.
	Confirm(ctx context.Context, id ulid.ULID, confirmedAt time.Time) error
}
