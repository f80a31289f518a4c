// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// HeaderProjectKey carries the project key on owner requests
const HeaderProjectKey = "X-Project-Key"

var ErrInvalidProjectKey = errors.New("invalid project key")

func sign(message, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(message))
	return h.Sum(nil)
}

// GenerateProjectKey creates the HMAC-based owner key for a project.
// Deterministic, so it never needs to be stored.
func GenerateProjectKey(projectID, salt string) string {
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sign(projectID, salt)), "=")
}

// ValidateProjectKey checks the key against the project ID in constant time
func ValidateProjectKey(projectID, key, salt string) error {
	expected := GenerateProjectKey(projectID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidProjectKey
	}
	return nil
}

// GenerateShareSlug creates a short, deterministic URL slug for an instrument
func GenerateShareSlug(instrumentID, salt string) string {
	// First 8 bytes are enough for a short slug
	return base62Encode(sign(instrumentID, salt)[:8])
}

// base62Encode converts up to 8 bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of a respondent's IP address.
// Only the first 8 bytes are stored, so raw addresses never reach the database.
func HashIP(ip, salt string) string {
	return hex.EncodeToString(sign(ip, salt)[:8])
}
