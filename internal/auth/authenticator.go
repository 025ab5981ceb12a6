// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"context"

	"github.com/samber/oops"

	"github.com/keyrail/keyrail/pkg/observability"
)

// Identity is the result of a successful user authentication: the API key
// the request authenticated with, the live access token, and its user.
type Identity struct {
	APIKey      *APIKey
	AccessToken *AccessToken
	User        *User
}

// Authenticator verifies Authorization-header credentials. It holds no
// per-request state; all authoritative state lives in the repositories.
type Authenticator struct {
	apiKeys APIKeyRepository
	tokens  AccessTokenRepository
	users   UserRepository
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(apiKeys APIKeyRepository, tokens AccessTokenRepository, users UserRepository) (*Authenticator, error) {
	if apiKeys == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("api key repository is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("access token repository is required")
	}
	if users == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("user repository is required")
	}
	return &Authenticator{apiKeys: apiKeys, tokens: tokens, users: users}, nil
}

// errUnauthenticated is the uniform rejection for header verification.
// Wrapping the sentinel lets callers errors.Is without learning which
// credential component failed.
func errUnauthenticated() error {
	return oops.Code("AUTH_UNAUTHENTICATED").Wrap(ErrUnauthenticated)
}

// AuthenticateClient verifies the service-level API key in the header.
// Every failure mode, including store errors, collapses to
// ErrUnauthenticated: invalid and nonexistent keys are indistinguishable.
func (a *Authenticator) AuthenticateClient(ctx context.Context, header string) (*APIKey, error) {
	creds := ParseCredentials(header)

	key := a.verifyAPIKey(ctx, creds.APIKey)
	if key == nil {
		observability.RecordAuthAttempt(observability.RealmClient, observability.ResultUnauthenticated)
		return nil, errUnauthenticated()
	}

	observability.RecordAuthAttempt(observability.RealmClient, observability.ResultOK)
	return key, nil
}

// AuthenticateUser verifies both the API key and the per-user access
// token scoped to it. API-key verification strictly precedes token
// verification; the token query is scoped by the verified key, so a
// session can never authenticate against the wrong API key.
func (a *Authenticator) AuthenticateUser(ctx context.Context, header string) (*Identity, error) {
	creds := ParseCredentials(header)

	key := a.verifyAPIKey(ctx, creds.APIKey)
	if key == nil {
		observability.RecordAuthAttempt(observability.RealmUser, observability.ResultUnauthenticated)
		return nil, errUnauthenticated()
	}

	token, user := a.verifyAccessToken(ctx, creds.AccessToken, key)
	if token == nil {
		observability.RecordAuthAttempt(observability.RealmUser, observability.ResultUnauthenticated)
		return nil, errUnauthenticated()
	}

	observability.RecordAuthAttempt(observability.RealmUser, observability.ResultOK)
	return &Identity{APIKey: key, AccessToken: token, User: user}, nil
}

// verifyAPIKey resolves and validates the api_key pair. Returns nil on
// any failure; the caller maps nil to the uniform unauthenticated outcome.
func (a *Authenticator) verifyAPIKey(ctx context.Context, pair *CredentialPair) *APIKey {
	if pair == nil || pair.Secret == "" {
		return nil
	}

	id, err := parseID(pair.ID)
	if err != nil {
		return nil
	}

	key, err := a.apiKeys.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	if !key.Active {
		return nil
	}
	if !VerifySecret(pair.Secret, key.SecretHash) {
		return nil
	}

	return key
}

// verifyAccessToken resolves and validates the access_token pair, scoped
// to an already-verified API key. Detecting an expired token soft-deletes
// it as a side effect; this is the only mutation the read path performs
// and it is idempotent under concurrent verification.
func (a *Authenticator) verifyAccessToken(ctx context.Context, pair *CredentialPair, key *APIKey) (*AccessToken, *User) {
	if pair == nil || pair.Secret == "" {
		return nil, nil
	}

	userID, err := parseID(pair.ID)
	if err != nil {
		return nil, nil
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil
	}

	token, err := a.tokens.GetActive(ctx, user.ID, key.ID)
	if err != nil {
		return nil, nil
	}

	if token.IsExpired() {
		// An expired token never authenticates, even with the correct
		// secret. Deletion failures are swallowed: the token stays
		// unusable either way and the next verification retries.
		_ = a.tokens.SoftDelete(ctx, token.ID) //nolint:errcheck // Best effort, expiry already rejects
		return nil, nil
	}

	if !VerifySecret(pair.Secret, token.SecretHash) {
		return nil, nil
	}

	return token, user
}
