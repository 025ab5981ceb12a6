// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package auth

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// parseID parses a credential-pair id into a ULID. Ids are opaque to the
// wire format; internally every entity ID is a ULID.
func parseID(s string) (ulid.ULID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, oops.Code("AUTH_INVALID_ID").With("id", s).Wrap(err)
	}
	return id, nil
}
