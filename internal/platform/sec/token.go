// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package sec provides the cryptographic primitives for session security.

All authentication in AlumHub is delegated to external identity providers, so
this package is intentionally small: it generates opaque session identifiers
and signs/verifies the cookie value that carries them.

Security model:

  - Session IDs are 256-bit random values; the ID alone grants nothing without
    a matching server-side session record.
  - The cookie value is "<id>.<hmac>" so a tampered or forged ID is rejected
    before the session store is ever consulted.
*/
package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// # Token Generation

// GenerateSecureToken returns a URL-safe random token of the given byte length.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// # Cookie Signing

// SignSessionID produces the cookie value for a session ID: the ID followed by
// an HMAC-SHA256 tag keyed with the session secret.
func SignSessionID(secret, sessionID string) string {
	return sessionID + "." + sign(secret, sessionID)
}

// VerifySessionID validates a signed cookie value and extracts the session ID.
//
// # Returns
//   - The embedded session ID when the signature is valid.
//   - ok=false for malformed or tampered values.
func VerifySessionID(secret, signedValue string) (sessionID string, ok bool) {
	id, tag, found := strings.Cut(signedValue, ".")
	if !found || id == "" {
		return "", false
	}

	expected := sign(secret, id)
	if subtle.ConstantTimeCompare([]byte(tag), []byte(expected)) != 1 {
		return "", false
	}

	return id, true
}

// sign computes the URL-safe HMAC-SHA256 tag for a value.
func sign(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
