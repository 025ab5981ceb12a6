// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/keyrail/keyrail/internal/auth"
)

const userColumns = `id, email, password_hash,
		reset_token_hash, reset_sent_at, reset_redirect_url,
		confirmation_token_hash, confirmation_redirect_url, confirmed_at,
		created_at, updated_at`

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.ResetTokenHash,
		user.ResetSentAt,
		user.ResetRedirectURL,
		user.ConfirmationTokenHash,
		user.ConfirmationRedirectURL,
		user.ConfirmedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.String())

	return r.wrapScan(row, "get user by id")
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
	`, email)

	return r.wrapScan(row, "get user by email")
}

// GetByResetTokenHash retrieves the user holding a pending reset with the
// given token digest.
func (r *UserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_token_hash = $1
	`, tokenHash)

	return r.wrapScan(row, "get user by reset token")
}

// GetByConfirmationTokenHash retrieves the user holding a pending
// confirmation with the given token digest.
func (r *UserRepository) GetByConfirmationTokenHash(ctx context.Context, tokenHash string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE confirmation_token_hash = $1
	`, tokenHash)

	return r.wrapScan(row, "get user by confirmation token")
}

// UpdatePassword updates only the password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update password_hash").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// InitPasswordReset populates the reset sub-record in one write, so the
// three fields are always simultaneously present.
func (r *UserRepository) InitPasswordReset(ctx context.Context, id ulid.ULID, tokenHash string, sentAt time.Time, redirectURL string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET reset_token_hash = $2, reset_sent_at = $3, reset_redirect_url = $4, updated_at = $5
		WHERE id = $1
	`, id.String(), tokenHash, sentAt, redirectURL, time.Now())
	if err != nil {
		return oops.Code("USER_INIT_RESET_FAILED").
			With("operation", "init password reset").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// CompletePasswordReset sets the new password hash and clears the reset
// sub-record in one write, so the three fields are always simultaneously
// absent afterwards.
func (r *UserRepository) CompletePasswordReset(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2,
			reset_token_hash = NULL, reset_sent_at = NULL, reset_redirect_url = NULL,
			updated_at = $3
		WHERE id = $1
	`, id.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("USER_COMPLETE_RESET_FAILED").
			With("operation", "complete password reset").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// InitConfirmation populates the confirmation sub-record in one write.
func (r *UserRepository) InitConfirmation(ctx context.Context, id ulid.ULID, tokenHash string, redirectURL string) error {
	var redirect *string
	if redirectURL != "" {
		redirect = &redirectURL
	}

	result, err := r.db.Exec(ctx, `
		UPDATE users SET confirmation_token_hash = $2, confirmation_redirect_url = $3, confirmed_at = NULL, updated_at = $4
		WHERE id = $1
	`, id.String(), tokenHash, redirect, time.Now())
	if err != nil {
		return oops.Code("USER_INIT_CONFIRM_FAILED").
			With("operation", "init confirmation").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Confirm clears the confirmation token and stamps confirmed_at.
func (r *UserRepository) Confirm(ctx context.Context, id ulid.ULID, confirmedAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET confirmation_token_hash = NULL, confirmed_at = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), confirmedAt, time.Now())
	if err != nil {
		return oops.Code("USER_CONFIRM_FAILED").
			With("operation", "confirm user").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// wrapScan scans a single user row, mapping pgx.ErrNoRows to ErrNotFound.
func (r *UserRepository) wrapScan(row pgx.Row, operation string) (*auth.User, error) {
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", operation).
			Wrap(err)
	}
	return user, nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr string
		user  auth.User
	)

	err := row.Scan(
		&idStr,
		&user.Email,
		&user.PasswordHash,
		&user.ResetTokenHash,
		&user.ResetSentAt,
		&user.ResetRedirectURL,
		&user.ConfirmationTokenHash,
		&user.ConfirmationRedirectURL,
		&user.ConfirmedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").With("id", idStr).Wrap(err)
	}
	user.ID = id

	return &user, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
