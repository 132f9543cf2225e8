// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package identity wraps the external identity providers behind a common shape.

Two very different login protocols — an OIDC discovery/authorization-code flow
with refresh tokens, and a plain OAuth2 code-plus-profile-fetch flow — are
normalized into a single [Principal] record so that the session layer never
branches on provider internals.

# Architecture

  - Principal: The provider-independent result of a successful login.
  - OIDCAdapter: Discovery, code exchange, transparent token refresh,
    end-session redirects.
  - OAuth2Adapter: Code exchange plus a profile fetch for providers without
    OIDC discovery. Optional; constructed only when credentials exist.

All provider failures are classified at this boundary ([DiscoveryError],
[AuthExchangeError], [RefreshError]) — no raw SDK error crosses into handlers.
*/
package identity

import (
	"fmt"
	"time"
)

// # Provider Taxonomy

// Provider tags which protocol produced a principal.
type Provider string

const (
	// ProviderOIDC marks principals from the primary discovery-based provider.
	ProviderOIDC Provider = "oidc"

	// ProviderOAuth2 marks principals from the optional profile-fetch provider.
	ProviderOAuth2 Provider = "oauth2"
)

// # Core Entities

// Principal is the normalized result of a successful external login.
//
// It is constructed fresh on every provider callback, projected into a User
// upsert, and then embedded (by value) in the server-side session. It is never
// serialized into a client response — tokens stay server-side.
type Principal struct {
	SubjectID  string   `json:"subject_id"` // Provider-scoped unique ID
	Provider   Provider `json:"provider"`
	Email      string   `json:"email,omitempty"`
	GivenName  string   `json:"given_name,omitempty"`
	FamilyName string   `json:"family_name,omitempty"`
	AvatarURL  string   `json:"avatar_url,omitempty"`

	// OIDC bookkeeping. Zero values for ProviderOAuth2, whose sessions have
	// no token-expiry concept.
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"` // Epoch seconds
}

// TokenExpired reports whether the embedded access token has expired.
//
// Always false for OAuth2 principals: their sessions are bounded only by the
// session's own absolute TTL.
func (p *Principal) TokenExpired(now time.Time) bool {
	if p.Provider != ProviderOIDC {
		return false
	}
	return now.Unix() > p.ExpiresAt
}

// TokenSet is the result of a successful refresh-token grant.
type TokenSet struct {
	AccessToken  string
	RefreshToken string // May rotate; empty means "keep the previous one"
	ExpiresAt    int64  // Epoch seconds
}

// # Error Taxonomy

// DiscoveryError indicates the OIDC issuer was unreachable or returned
// malformed metadata. Fatal to the affected adapter's login routes.
type DiscoveryError struct {
	Issuer string
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("identity: discovery failed for issuer %s: %v", e.Issuer, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// AuthExchangeError indicates an invalid, expired, or replayed authorization
// code (or a timed-out exchange). Surfaced as redirect-to-login, never a 500.
type AuthExchangeError struct {
	Err error
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("identity: authorization code exchange failed: %v", e.Err)
}

func (e *AuthExchangeError) Unwrap() error { return e.Err }

// RefreshError indicates a revoked or expired refresh token. The caller must
// treat it as "this request is unauthenticated" — never as a reason to
// destroy the session record.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("identity: token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
