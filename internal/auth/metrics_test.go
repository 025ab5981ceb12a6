// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/keyrail/keyrail/internal/auth"
	"github.com/keyrail/keyrail/internal/auth/mocks"
	"github.com/keyrail/keyrail/pkg/observability"
)

func TestAuthenticateClient_RecordsAttempts(t *testing.T) {
	ctx := context.Background()

	t.Run("valid key counts as ok", func(t *testing.T) {
		f := newFixtures(t)
		keyRepo := mocks.NewMockAPIKeyRepository(t)
		a, err := auth.NewAuthenticator(keyRepo, mocks.NewMockAccessTokenRepository(t), mocks.NewMockUserRepository(t))
		require.NoError(t, err)

		keyRepo.On("GetByID", ctx, f.key.ID).Return(f.key, nil)

		before := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmClient, observability.ResultOK))

		_, err = a.AuthenticateClient(ctx, f.clientHeader())
		require.NoError(t, err)

		after := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmClient, observability.ResultOK))
		assert.Equal(t, before+1, after)
	})

	t.Run("rejected key counts as unauthenticated", func(t *testing.T) {
		a, err := auth.NewAuthenticator(mocks.NewMockAPIKeyRepository(t), mocks.NewMockAccessTokenRepository(t), mocks.NewMockUserRepository(t))
		require.NoError(t, err)

		before := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmClient, observability.ResultUnauthenticated))

		_, err = a.AuthenticateClient(ctx, "")
		require.Error(t, err)

		after := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmClient, observability.ResultUnauthenticated))
		assert.Equal(t, before+1, after)
	})
}

func TestAuthenticateUser_RecordsAttempts(t *testing.T) {
	ctx := context.Background()

	f := newFixtures(t)
	keyRepo := mocks.NewMockAPIKeyRepository(t)
	tokenRepo := mocks.NewMockAccessTokenRepository(t)
	userRepo := mocks.NewMockUserRepository(t)
	a, err := auth.NewAuthenticator(keyRepo, tokenRepo, userRepo)
	require.NoError(t, err)

	keyRepo.On("GetByID", ctx, f.key.ID).Return(f.key, nil)
	userRepo.On("GetByID", ctx, f.user.ID).Return(f.user, nil)
	tokenRepo.On("GetActive", ctx, f.user.ID, f.key.ID).Return(f.token, nil)

	before := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmUser, observability.ResultOK))

	_, err = a.AuthenticateUser(ctx, f.userHeader())
	require.NoError(t, err)

	after := testutil.ToFloat64(observability.AuthAttempts.WithLabelValues(observability.RealmUser, observability.ResultOK))
	assert.Equal(t, before+1, after)
}

func TestLogin_RecordsRotation(t *testing.T) {
	ctx := context.Background()

	_, keyDigest, err := auth.GenerateSecret()
	require.NoError(t, err)
	apiKey, err := auth.NewAPIKey(keyDigest)
	require.NoError(t, err)

	user, err := auth.NewUser("alice@example.com", "$argon2id$v=19$m=65536,t=1,p=4$salt$hash")
	require.NoError(t, err)

	userRepo := mocks.NewMockUserRepository(t)
	tokenRepo := mocks.NewMockAccessTokenRepository(t)
	hasher := mocks.NewMockPasswordHasher(t)
	svc, err := auth.NewAuthService(userRepo, tokenRepo, hasher)
	require.NoError(t, err)

	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
	hasher.On("Verify", "password123", user.PasswordHash).Return(true, nil)
	hasher.On("NeedsUpgrade", user.PasswordHash).Return(false)
	tokenRepo.On("GetActive", ctx, user.ID, apiKey.ID).Return(nil, auth.ErrNotFound)
	tokenRepo.On("Create", ctx, mock.AnythingOfType("*auth.AccessToken")).Return(nil)

	before := testutil.ToFloat64(observability.TokenRotations)

	_, _, err = svc.Login(ctx, "alice@example.com", "password123", apiKey)
	require.NoError(t, err)

	after := testutil.ToFloat64(observability.TokenRotations)
	assert.Equal(t, before+1, after)
}

func TestResetRequest_RecordsOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted request counts as ok", func(t *testing.T) {
		user, err := auth.NewUser("alice@example.com", "$argon2id$v=19$m=65536,t=1,p=4$salt$hash")
		require.NoError(t, err)

		userRepo := mocks.NewMockUserRepository(t)
		svc, err := auth.NewPasswordResetService(userRepo, mocks.NewMockPasswordHasher(t))
		require.NoError(t, err)

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		userRepo.On("InitPasswordReset", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), "http://example.com").Return(nil)

		before := testutil.ToFloat64(observability.ResetRequests.WithLabelValues(observability.ResultOK))

		_, _, err = svc.Request(ctx, "alice@example.com", "http://example.com")
		require.NoError(t, err)

		after := testutil.ToFloat64(observability.ResetRequests.WithLabelValues(observability.ResultOK))
		assert.Equal(t, before+1, after)
	})

	t.Run("unknown email counts as not_found", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		svc, err := auth.NewPasswordResetService(userRepo, mocks.NewMockPasswordHasher(t))
		require.NoError(t, err)

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)

		before := testutil.ToFloat64(observability.ResetRequests.WithLabelValues(observability.ResultNotFound))

		_, _, err = svc.Request(ctx, "ghost@example.com", "http://example.com")
		require.Error(t, err)

		after := testutil.ToFloat64(observability.ResetRequests.WithLabelValues(observability.ResultNotFound))
		assert.Equal(t, before+1, after)
	})
}
