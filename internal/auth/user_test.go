// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyrail/keyrail/internal/auth"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with lowercased email", func(t *testing.T) {
		user, err := auth.NewUser("Alice@Example.COM", "somehash")
		require.NoError(t, err)
		assert.NotEqual(t, ulid.ULID{}, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "somehash", user.PasswordHash)
		assert.False(t, user.ResetPending())
		assert.False(t, user.Confirmed())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		_, err := auth.NewUser("", "somehash")
		assert.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := auth.NewUser("alice@example.com", "")
		assert.Error(t, err)
	})
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "alice@example.com"},
		{name: "subdomain", email: "bob@mail.example.co.uk"},
		{name: "plus tag", email: "carol+test@example.com"},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "alice.example.com", wantErr: true},
		{name: "missing domain dot", email: "alice@example", wantErr: true},
		{name: "contains whitespace", email: "alice smith@example.com", wantErr: true},
		{name: "double at", email: "alice@@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_ResetPending(t *testing.T) {
	user, err := auth.NewUser("alice@example.com", "somehash")
	require.NoError(t, err)

	t.Run("false when all fields absent", func(t *testing.T) {
		assert.False(t, user.ResetPending())
	})

	t.Run("true when all fields present", func(t *testing.T) {
		tokenHash := auth.HashSecret("token")
		sentAt := time.Now()
		redirectURL := "http://example.com"

		user.ResetTokenHash = &tokenHash
		user.ResetSentAt = &sentAt
		user.ResetRedirectURL = &redirectURL

		assert.True(t, user.ResetPending())
	})
}

func TestUser_Confirmed(t *testing.T) {
	user, err := auth.NewUser("alice@example.com", "somehash")
	require.NoError(t, err)

	assert.False(t, user.Confirmed())

	confirmedAt := time.Now()
	user.ConfirmedAt = &confirmedAt
	assert.True(t, user.Confirmed())
}
