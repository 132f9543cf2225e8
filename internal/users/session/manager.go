// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	"github.com/alumhub/alumhub/internal/platform/sec"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// TokenRefresher exchanges a refresh token for a fresh token set.
//
// # Why an interface?
//
// The manager must not depend on the concrete OIDC adapter; tests inject a
// scripted refresher instead.
type TokenRefresher interface {
	Refresh(context context.Context, refreshToken string) (*identity.TokenSet, error)
}

// Manager owns the session lifecycle: establish on login, resolve (with
// transparent token refresh) on every request, destroy on logout.
type Manager struct {
	repository Repository
	refresher  TokenRefresher
	secret     string
	ttl        time.Duration
	now        func() time.Time
}

// NewManager constructs a session Manager.
//
// # Parameters
//   - repository: Backing store (Redis in production).
//   - refresher: OIDC token refresher; used only for OIDC principals.
//   - secret: HMAC key for the signed session cookie value.
func NewManager(repository Repository, refresher TokenRefresher, secret string) *Manager {
	return &Manager{
		repository: repository,
		refresher:  refresher,
		secret:     secret,
		ttl:        constants.SessionTTL,
		now:        time.Now,
	}
}

/*
Establish creates a session for a freshly authenticated principal.

Parameters:
  - context: context.Context
  - principal: The normalized identity from the provider callback

Returns:
  - string: The signed cookie value ("<id>.<hmac>") to hand to the browser
  - *Session: The persisted record
  - error: ID generation or persistence failures
*/
func (manager *Manager) Establish(context context.Context, principal *identity.Principal) (string, *Session, error) {

	// Generate the opaque session ID
	sessionID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return "", nil, err
	}

	// Build the record with an absolute deadline
	now := manager.now()
	record := &Session{
		ID:        sessionID,
		Principal: *principal,
		CreatedAt: now,
		ExpiresAt: now.Add(manager.ttl),
	}

	// Persist the session
	if err := manager.repository.Create(context, record); err != nil {
		return "", nil, err
	}

	// Sign the ID for cookie transport
	return sec.SignSessionID(manager.secret, sessionID), record, nil
}

/*
Resolve turns a signed cookie value into a live principal.

Description: Verifies the cookie signature, loads the session, and — for OIDC
principals with an expired access token — performs a transparent refresh. The
refreshed tokens are persisted in place with the TTL preserved.

A failed refresh makes THIS REQUEST unauthenticated; the session record is
left untouched so a later request may succeed once the provider recovers.

Parameters:
  - context: context.Context
  - signedValue: Raw session cookie value

Returns:
  - string: The resolved session ID
  - *identity.Principal: The (possibly refreshed) principal
  - error: ErrUnauthenticated for every non-resolvable value
*/
func (manager *Manager) Resolve(context context.Context, signedValue string) (string, *identity.Principal, error) {

	// 1. Signature check before any store lookup
	sessionID, ok := sec.VerifySessionID(manager.secret, signedValue)
	if !ok {
		return "", nil, ErrUnauthenticated
	}

	// 2. Load the session
	record, err := manager.repository.Find(context, sessionID)
	if err != nil {
		return "", nil, ErrUnauthenticated
	}

	principal := record.Principal

	// 3. Fresh token: done
	if !principal.TokenExpired(manager.now()) {
		return sessionID, &principal, nil
	}

	// 4. Expired token without a refresh token cannot be recovered
	if principal.RefreshToken == "" {
		return "", nil, ErrUnauthenticated
	}

	// 5. Transparent refresh. Failure leaves the session record untouched.
	tokens, err := manager.refresher.Refresh(context, principal.RefreshToken)
	if err != nil {
		return "", nil, errors.Join(ErrUnauthenticated, err)
	}

	principal.AccessToken = tokens.AccessToken
	principal.ExpiresAt = tokens.ExpiresAt
	if tokens.RefreshToken != "" {
		// Providers may rotate the refresh token on every grant
		principal.RefreshToken = tokens.RefreshToken
	}

	// 6. Persist best-effort: the request proceeds on the refreshed principal
	// even if the rewrite fails, at the cost of re-refreshing next time.
	if err := manager.repository.UpdatePrincipal(context, sessionID, &principal); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "session_refresh_persist_failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}

	return sessionID, &principal, nil
}

/*
Destroy removes a session on logout.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (manager *Manager) Destroy(context context.Context, sessionID string) error {
	return manager.repository.Delete(context, sessionID)
}
