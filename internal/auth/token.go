// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// AccessTokenTTL is the access token lifetime, enforced lazily at
// verification time rather than by a background sweep.
const AccessTokenTTL = 14 * 24 * time.Hour

// AccessToken represents one live session binding a user to the API key
// used at login. It is created at login and soft-deleted on logout,
// rotation, or lazy-expiry detection. A non-deleted token's SecretHash is
// the digest of the secret currently held by the client.
type AccessToken struct {
	ID         ulid.ULID
	UserID     ulid.ULID
	APIKeyID   ulid.ULID
	SecretHash string
	CreatedAt  time.Time
	Deleted    bool
	DeletedAt  *time.Time
}

// NewAccessToken creates a validated AccessToken instance.
func NewAccessToken(userID, apiKeyID ulid.ULID, secretHash string) (*AccessToken, error) {
	if userID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("TOKEN_INVALID_USER").Errorf("user ID cannot be zero")
	}
	if apiKeyID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("TOKEN_INVALID_APIKEY").Errorf("API key ID cannot be zero")
	}
	if secretHash == "" {
		return nil, oops.Code("TOKEN_INVALID_HASH").Errorf("secret hash cannot be empty")
	}

	return &AccessToken{
		ID:         ulid.Make(),
		UserID:     userID,
		APIKeyID:   apiKeyID,
		SecretHash: secretHash,
		CreatedAt:  time.Now(),
	}, nil
}

// IsExpired returns true if the token is past its lifetime.
func (t *AccessToken) IsExpired() bool {
	return t.IsExpiredAt(time.Now())
}

// IsExpiredAt returns true if the token would be expired at the given time.
// Useful for testing with deterministic time values.
func (t *AccessToken) IsExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) > AccessTokenTTL
}

// AccessTokenRepository manages access token persistence.
type AccessTokenRepository interface {
	// Create stores a new access token. Returns ErrConflict when a
	// non-deleted token already exists for the same (user, API key) pair.
	Create(ctx context.Context, token *AccessToken) error

	// GetActive retrieves the non-deleted token for a user/API-key pair.
	// Returns ErrNotFound if none exists.
	GetActive(ctx context.Context, userID, apiKeyID ulid.ULID) (*AccessToken, error)

	// SoftDelete marks a token deleted. Deleting an already-deleted or
	// missing token is a no-op, so concurrent revocations are safe.
	SoftDelete(ctx context.Context, id ulid.ULID) error
}
