// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// APIKey identifies a calling client application, independent of any end
// user. Keys are created administratively, toggled via Active, and never
// hard-deleted in normal operation. Only the secret's digest is stored.
type APIKey struct {
	ID         ulid.ULID
	SecretHash string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAPIKey creates a validated, active APIKey from a secret digest.
func NewAPIKey(secretHash string) (*APIKey, error) {
	if secretHash == "" {
		return nil, oops.Code("APIKEY_INVALID_HASH").Errorf("secret hash cannot be empty")
	}

	now := time.Now()
	return &APIKey{
		ID:         ulid.Make(),
		SecretHash: secretHash,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// APIKeyRepository manages API key persistence.
type APIKeyRepository interface {
	// Create stores a new API key.
	Create(ctx context.Context, key *APIKey) error

	// GetByID retrieves an API key by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*APIKey, error)

	// SetActive flips the active flag for a key.
	SetActive(ctx context.Context, id ulid.ULID, active bool) error
}
