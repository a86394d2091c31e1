// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("missing admin key")
)

// GenerateAdminKey creates an HMAC-based admin key for a question
// This is deterministic and verifiable, so no key is ever stored
func GenerateAdminKey(questionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(questionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the question
func ValidateAdminKey(questionID, adminKey, salt string) error {
	if adminKey == "" {
		return ErrMissingAdminKey
	}
	expected := GenerateAdminKey(questionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
