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

// APIKeyRepository implements auth.APIKeyRepository using PostgreSQL.
type APIKeyRepository struct {
	db DB
}

// NewAPIKeyRepository creates a new APIKeyRepository.
func NewAPIKeyRepository(db DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create stores a new API key.
func (r *APIKeyRepository) Create(ctx context.Context, key *auth.APIKey) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO api_keys (id, secret_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		key.ID.String(),
		key.SecretHash,
		key.Active,
		key.CreatedAt,
		key.UpdatedAt,
	)
	if err != nil {
		return oops.Code("APIKEY_CREATE_FAILED").
			With("operation", "insert api_key").
			With("id", key.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an API key by ID.
func (r *APIKeyRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.APIKey, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, secret_hash, active, created_at, updated_at
		FROM api_keys
		WHERE id = $1
	`, id.String())

	key, err := scanAPIKey(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("APIKEY_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("APIKEY_GET_FAILED").
			With("operation", "get api_key by id").
			With("id", id.String()).
			Wrap(err)
	}
	return key, nil
}

// SetActive flips the active flag for a key.
func (r *APIKeyRepository) SetActive(ctx context.Context, id ulid.ULID, active bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE api_keys SET active = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), active, time.Now())
	if err != nil {
		return oops.Code("APIKEY_SET_ACTIVE_FAILED").
			With("operation", "update api_key active").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("APIKEY_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanAPIKey scans a single row into an APIKey.
// Callers are responsible for handling pgx.ErrNoRows.
func scanAPIKey(row pgx.Row) (*auth.APIKey, error) {
	var (
		idStr      string
		secretHash string
		active     bool
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&idStr, &secretHash, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("APIKEY_SCAN_FAILED").
			With("operation", "scan api_key").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("APIKEY_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.APIKey{
		ID:         id,
		SecretHash: secretHash,
		Active:     active,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// Compile-time interface check.
var _ auth.APIKeyRepository = (*APIKeyRepository)(nil)
