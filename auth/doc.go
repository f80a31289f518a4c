// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides project keys, share slugs and IP hashing.

# Project Keys

Project keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateProjectKey(projectID, salt)
	err := auth.ValidateProjectKey(projectID, key, salt)

The key is URL-safe base64 encoded without padding and is sent by the owner
in the X-Project-Key header. Since it's deterministic, validation needs no
stored secret per project.

# Share Slugs

Published instruments get a URL-friendly identifier for participants:

	slug := auth.GenerateShareSlug(instrumentID, salt)

Slugs are base62 encoded (alphanumeric only) and deterministic from the
instrument ID and salt.

# IP Hashing

Responses store a one-way hash of the submitting IP for duplicate detection:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
