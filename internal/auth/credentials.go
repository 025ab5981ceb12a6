// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import "strings"

// Credential role names recognized in the Authorization header.
const (
	RoleAPIKey      = "api_key"
	RoleAccessToken = "access_token"
)

// CredentialPair is one id:secret pair extracted from the Authorization
// header. It is transient and never persisted.
type CredentialPair struct {
	ID     string
	Secret string
}

// Credentials holds the credential pairs presented on a request. A nil
// field means the role was not provided (or was malformed, which is
// treated the same).
type Credentials struct {
	APIKey      *CredentialPair
	AccessToken *CredentialPair
}

// ParseCredentials extracts credential pairs from a raw Authorization
// header value of the form:
//
//	<scheme> api_key=<id>:<secret>[, access_token=<id>:<secret>]
//
// Parsing is deliberately forgiving: surrounding whitespace is ignored,
// the secret may be wrapped in double quotes, and each pair is split on
// the FIRST colon so secrets may themselves contain colons. Ids must not
// contain a colon. A role whose value lacks a colon separator, or whose
// id or secret is empty, is treated as absent. Malformed input never
// produces an error; it simply yields fewer pairs.
func ParseCredentials(header string) Credentials {
	var creds Credentials

	s := strings.TrimSpace(header)
	if s == "" {
		return creds
	}

	// Drop the scheme token, if any. The first whitespace-delimited word
	// is a scheme name only when it is not itself a role=value pair.
	if i := strings.IndexAny(s, " \t"); i >= 0 && !strings.Contains(s[:i], "=") {
		s = s[i+1:]
	}

	for _, field := range strings.Split(s, ",") {
		role, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		pair := parsePair(value)
		if pair == nil {
			continue
		}
		switch strings.TrimSpace(role) {
		case RoleAPIKey:
			creds.APIKey = pair
		case RoleAccessToken:
			creds.AccessToken = pair
		}
	}

	return creds
}

// parsePair splits a raw `id:secret` value into a CredentialPair.
// Quotes may wrap the whole value or just the secret. Returns nil when
// the value has no colon or either side is empty.
func parsePair(value string) *CredentialPair {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)

	id, secret, ok := strings.Cut(value, ":")
	if !ok {
		return nil
	}
	secret = strings.Trim(secret, `"`)
	if id == "" || secret == "" {
		return nil
	}

	return &CredentialPair{ID: id, Secret: secret}
}
