// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/keyrail/keyrail/internal/auth"
)

// AccessTokenRepository implements auth.AccessTokenRepository using
// PostgreSQL. A partial unique index on (user_id, api_key_id) WHERE NOT
// deleted backstops the at-most-one-live-session invariant; its violation
// surfaces as auth.ErrConflict.
type AccessTokenRepository struct {
	db DB
}

// NewAccessTokenRepository creates a new AccessTokenRepository.
func NewAccessTokenRepository(db DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

// Create stores a new access token.
func (r *AccessTokenRepository) Create(ctx context.Context, token *auth.AccessToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO access_tokens (id, user_id, api_key_id, secret_hash, created_at, deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		token.ID.String(),
		token.UserID.String(),
		token.APIKeyID.String(),
		token.SecretHash,
		token.CreatedAt,
		token.Deleted,
		token.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("TOKEN_CONFLICT").
				With("user_id", token.UserID.String()).
				With("api_key_id", token.APIKeyID.String()).
				Wrap(auth.ErrConflict)
		}
		return oops.Code("TOKEN_CREATE_FAILED").
			With("operation", "insert access_token").
			With("user_id", token.UserID.String()).
			Wrap(err)
	}
	return nil
}

// GetActive retrieves the non-deleted token for a user/API-key pair.
func (r *AccessTokenRepository) GetActive(ctx context.Context, userID, apiKeyID ulid.ULID) (*auth.AccessToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, api_key_id, secret_hash, created_at, deleted, deleted_at
		FROM access_tokens
		WHERE user_id = $1 AND api_key_id = $2 AND NOT deleted
	`, userID.String(), apiKeyID.String())

	token, err := scanAccessToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TOKEN_NOT_FOUND").
			With("user_id", userID.String()).
			With("api_key_id", apiKeyID.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TOKEN_GET_ACTIVE_FAILED").
			With("operation", "get active access_token").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return token, nil
}

// SoftDelete marks a token deleted. Zero affected rows means the token is
// already deleted or never existed; both are valid states, so concurrent
// expiry deletions and repeated logouts are no-ops.
func (r *AccessTokenRepository) SoftDelete(ctx context.Context, id ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE access_tokens SET deleted = true, deleted_at = $2
		WHERE id = $1 AND NOT deleted
	`, id.String(), time.Now())
	if err != nil {
		return oops.Code("TOKEN_DELETE_FAILED").
			With("operation", "soft delete access_token").
			With("id", id.String()).
			Wrap(err)
	}
	return nil
}

// scanAccessToken scans a single row into an AccessToken.
// Callers are responsible for handling pgx.ErrNoRows.
func scanAccessToken(row pgx.Row) (*auth.AccessToken, error) {
	var (
		idStr      string
		userIDStr  string
		keyIDStr   string
		secretHash string
		createdAt  time.Time
		deleted    bool
		deletedAt  *time.Time
	)

	if err := row.Scan(&idStr, &userIDStr, &keyIDStr, &secretHash, &createdAt, &deleted, &deletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("TOKEN_SCAN_FAILED").
			With("operation", "scan access_token").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID_USER_ID").With("user_id", userIDStr).Wrap(err)
	}
	apiKeyID, err := ulid.Parse(keyIDStr)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID_APIKEY_ID").With("api_key_id", keyIDStr).Wrap(err)
	}

	return &auth.AccessToken{
		ID:         id,
		UserID:     userID,
		APIKeyID:   apiKeyID,
		SecretHash: secretHash,
		CreatedAt:  createdAt,
		Deleted:    deleted,
		DeletedAt:  deletedAt,
	}, nil
}

// Compile-time interface check.
var _ auth.AccessTokenRepository = (*AccessTokenRepository)(nil)
