// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/samber/oops"
)

// SecretBytes is the length of generated credential secrets.
// 32 bytes = 64 hex chars.
const SecretBytes = 32

// GenerateSecret creates a secure random secret and its digest.
// Returns (plaintext_secret, sha256_digest, error). The plaintext is
// handed to the client exactly once; only the digest is stored.
func GenerateSecret() (secret, digest string, err error) {
	buf := make([]byte, SecretBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", oops.Code("SECRET_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SecretBytes).
			Wrap(err)
	}

	secret = hex.EncodeToString(buf)
	digest = HashSecret(secret)

	return secret, digest, nil
}

// HashSecret computes the hex-encoded SHA-256 digest of a secret.
func HashSecret(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}

// VerifySecret checks a plaintext secret against a stored digest.
// Hashing the presented secret first normalizes both sides to the same
// length, so the constant-time comparison leaks neither content nor
// length. Empty input never verifies.
func VerifySecret(secret, digest string) bool {
	if secret == "" || digest == "" {
		return false
	}
	computed := HashSecret(secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
