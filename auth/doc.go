// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key generation and validation.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(questionID, salt)
	err := auth.ValidateAdminKey(questionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same question ID and salt always produce the same key. This allows
validation without storing the key in the database.

The key is returned once, when the question is created, and must be sent in
the X-Admin-Key header to manage that question's choices.
*/
package auth
