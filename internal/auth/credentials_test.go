// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyrail/keyrail/internal/auth"
)

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		apiKey      *auth.CredentialPair
		accessToken *auth.CredentialPair
	}{
		{
			name:   "single api_key pair",
			header: "api_key=client1:secret1",
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "secret1"},
		},
		{
			name:        "both pairs comma separated",
			header:      "api_key=client1:s1, access_token=user9:s2",
			apiKey:      &auth.CredentialPair{ID: "client1", Secret: "s1"},
			accessToken: &auth.CredentialPair{ID: "user9", Secret: "s2"},
		},
		{
			name:   "scheme token is dropped",
			header: "Keyrail-Token api_key=client1:secret1",
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "secret1"},
		},
		{
			name:   "quoted value",
			header: `api_key="client1:secret1"`,
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "secret1"},
		},
		{
			name:   "quoted secret only",
			header: `api_key=client1:"secret1"`,
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "secret1"},
		},
		{
			name:   "secret containing colons splits on first colon",
			header: "api_key=client1:se:cr:et",
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "se:cr:et"},
		},
		{
			name:   "whitespace around value ignored",
			header: "  api_key=  client1:secret1  ",
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "secret1"},
		},
		{
			name:   "empty header",
			header: "",
		},
		{
			name:   "whitespace only header",
			header: "   \t  ",
		},
		{
			name:   "value without colon is dropped",
			header: "api_key=client1secret1",
		},
		{
			name:   "empty id is dropped",
			header: "api_key=:secret1",
		},
		{
			name:   "empty secret is dropped",
			header: "api_key=client1:",
		},
		{
			name:        "unknown role ignored, known role kept",
			header:      "basic_auth=a:b, access_token=user9:s2",
			accessToken: &auth.CredentialPair{ID: "user9", Secret: "s2"},
		},
		{
			name:   "scheme word only",
			header: "Keyrail-Token",
		},
		{
			name:   "malformed token pair leaves api_key intact",
			header: "api_key=client1:s1, access_token=broken",
			apiKey: &auth.CredentialPair{ID: "client1", Secret: "s1"},
		},
		{
			name:        "later duplicate role wins",
			header:      "access_token=u1:first, access_token=u2:second",
			accessToken: &auth.CredentialPair{ID: "u2", Secret: "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := auth.ParseCredentials(tt.header)
			assert.Equal(t, tt.apiKey, creds.APIKey)
			assert.Equal(t, tt.accessToken, creds.AccessToken)
		})
	}
}

func TestParseCredentials_NeverPanics(t *testing.T) {
	// Garbage inputs must degrade to absent pairs, never an error or panic.
	inputs := []string{
		"=",
		",,,",
		"api_key=",
		"api_key==::",
		"scheme =weird, api_key",
		`api_key="unterminated:quote`,
	}
	for _, in := range inputs {
		require.NotPanics(t, func() { auth.ParseCredentials(in) })
	}
}
