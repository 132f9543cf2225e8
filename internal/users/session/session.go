// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package session manages server-side login sessions.

A session is an opaque record keyed by a random ID, holding the [identity.Principal]
captured at login. The browser carries only the HMAC-signed ID; tokens never
leave the server.

# Lifecycle

  - Establish: Created on a successful provider callback with an absolute TTL.
  - Resolve: Looked up on every request; expired OIDC access tokens are
    refreshed transparently and the refreshed tokens persisted in place.
  - Destroy: Deleted on logout. Nothing else destroys a session record — a
    failed token refresh only makes the current request anonymous.

# Storage

Sessions live in Redis with the TTL enforced by the store itself, so even a
process crash cannot leak live sessions past their deadline. Refresh rewrites
the payload but preserves the TTL: token refresh never extends a login.
*/
package session

import (
	"errors"
	"time"

	"github.com/alumhub/alumhub/internal/users/identity"
)

// ErrUnauthenticated is returned whenever a cookie value cannot be resolved to
// a live principal: bad signature, missing or expired session, or a dead
// refresh token. Callers treat all of these identically.
var ErrUnauthenticated = errors.New("session: unauthenticated")

// Session is the server-side record backing one logged-in browser.
type Session struct {
	ID        string             `json:"id"`
	Principal identity.Principal `json:"principal"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"` // Absolute deadline; never extended
}

// Expired reports whether the session has passed its absolute deadline.
//
// The Redis TTL normally enforces this, but the payload carries the deadline
// too so a record surviving past its TTL is still treated as absent.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
