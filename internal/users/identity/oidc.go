// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/alumhub/alumhub/internal/platform/constants"
)

// # OIDC Adapter

// OIDCAdapter performs the OIDC authorization-code flow against a discovered
// provider configuration and refreshes expired access tokens.
//
// One logical OIDC client is registered per externally-visible domain the app
// is served from: each domain gets its own callback URL, while all domains
// share the same discovered provider metadata.
//
// # Concurrency
//
// The discovery cache is read-mostly and time-bounded. The mutex is never held
// across a network call; two requests racing a lazy refetch may both fetch,
// which is wasted work rather than a correctness problem.
type OIDCAdapter struct {
	issuerURL  string
	clientID   string
	domains    map[string]struct{}
	primary    string
	httpClient *http.Client
	cacheTTL   time.Duration
	now        func() time.Time

	mu                 sync.Mutex
	provider           *oidc.Provider
	endSessionEndpoint string
	fetchedAt          time.Time
}

// NewOIDCAdapter constructs the adapter for the given issuer and domain list.
//
// Discovery is lazy: the first login (or the first one after the cache
// expires) triggers the metadata fetch.
func NewOIDCAdapter(issuerURL, clientID string, domains []string) *OIDCAdapter {
	domainSet := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		domainSet[domain] = struct{}{}
	}

	primary := ""
	if len(domains) > 0 {
		primary = domains[0]
	}

	return &OIDCAdapter{
		issuerURL:  issuerURL,
		clientID:   clientID,
		domains:    domainSet,
		primary:    primary,
		httpClient: &http.Client{Timeout: constants.ProviderCallTimeout},
		cacheTTL:   constants.DiscoveryCacheTTL,
		now:        time.Now,
	}
}

// HasDomain reports whether a callback client is registered for the host.
func (adapter *OIDCAdapter) HasDomain(host string) bool {
	_, found := adapter.domains[host]
	return found
}

/*
BeginLogin builds the authorization-code redirect URL for the given domain.

Description: Scoped to "openid email profile offline_access" so that the
provider issues a refresh token alongside the ID token.

Parameters:
  - ctx: context.Context
  - host: The externally-visible domain handling this request
  - state: Opaque anti-CSRF value bound to the caller via a short-lived cookie

Returns:
  - string: Fully-formed provider authorization URL
  - error: DiscoveryError, or a plain error for an unregistered domain
*/
func (adapter *OIDCAdapter) BeginLogin(ctx context.Context, host, state string) (string, error) {
	if !adapter.HasDomain(host) {
		return "", fmt.Errorf("identity: no login client registered for domain %q", host)
	}

	provider, _, err := adapter.discover(ctx)
	if err != nil {
		return "", err
	}

	conf := adapter.oauthConfig(provider, host)
	return conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login consent")), nil
}

/*
CompleteLogin exchanges an authorization code for tokens and builds a Principal.

Description: Verifies the returned ID token against the provider's JWKS,
extracts identity claims, and captures the token set for transparent refresh.

Parameters:
  - ctx: context.Context
  - host: Domain the callback arrived on (must match the begin-login domain)
  - code: Authorization code from the provider callback

Returns:
  - *Principal: Normalized identity with provider=oidc
  - error: AuthExchangeError for invalid/expired/replayed codes
*/
func (adapter *OIDCAdapter) CompleteLogin(ctx context.Context, host, code string) (*Principal, error) {
	if !adapter.HasDomain(host) {
		return nil, &AuthExchangeError{Err: fmt.Errorf("unregistered callback domain %q", host)}
	}

	provider, _, err := adapter.discover(ctx)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := adapter.providerContext(ctx)
	defer cancel()

	conf := adapter.oauthConfig(provider, host)
	token, err := conf.Exchange(callCtx, code)
	if err != nil {
		return nil, &AuthExchangeError{Err: err}
	}

	rawIDToken, found := token.Extra("id_token").(string)
	if !found {
		return nil, &AuthExchangeError{Err: fmt.Errorf("token response missing id_token")}
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: adapter.clientID})
	idToken, err := verifier.Verify(callCtx, rawIDToken)
	if err != nil {
		return nil, &AuthExchangeError{Err: err}
	}

	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, &AuthExchangeError{Err: err}
	}

	// The access-token expiry drives transparent refresh; fall back to the
	// ID-token expiry when the provider omits expires_in.
	expiresAt := token.Expiry.Unix()
	if token.Expiry.IsZero() {
		expiresAt = idToken.Expiry.Unix()
	}

	return &Principal{
		SubjectID:    claims.Subject,
		Provider:     ProviderOIDC,
		Email:        claims.Email,
		GivenName:    firstNonEmpty(claims.GivenName, claims.FirstName),
		FamilyName:   firstNonEmpty(claims.FamilyName, claims.LastName),
		AvatarURL:    firstNonEmpty(claims.Picture, claims.ProfileImageURL),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

/*
Refresh exchanges a refresh token for a fresh access token and expiry.

Description: Used by the session layer when a request arrives with an expired
embedded access token. A failure here means "the session no longer proves an
identity" — it must never destroy the session record itself.

Parameters:
  - ctx: context.Context
  - refreshToken: The token captured at login (or a rotated successor)

Returns:
  - *TokenSet: New access token, optional rotated refresh token, expiry
  - error: RefreshError for revoked/expired tokens or unreachable providers
*/
func (adapter *OIDCAdapter) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	provider, _, err := adapter.discover(ctx)
	if err != nil {
		// A provider outage during refresh is indistinguishable from a dead
		// token for the triggering request: classify as a refresh failure.
		return nil, &RefreshError{Err: err}
	}

	callCtx, cancel := adapter.providerContext(ctx)
	defer cancel()

	conf := adapter.oauthConfig(provider, adapter.primary)
	source := conf.TokenSource(callCtx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		return nil, &RefreshError{Err: err}
	}

	return &TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry.Unix(),
	}, nil
}

/*
EndSessionURL builds the provider logout redirect for a destroyed session.

Returns an empty string (no error) when the provider does not advertise an
end_session_endpoint; the caller then falls back to a plain home redirect.
*/
func (adapter *OIDCAdapter) EndSessionURL(ctx context.Context, postLogoutRedirectURI string) (string, error) {
	_, endSession, err := adapter.discover(ctx)
	if err != nil {
		return "", err
	}
	if endSession == "" {
		return "", nil
	}

	logoutURL, err := url.Parse(endSession)
	if err != nil {
		return "", &DiscoveryError{Issuer: adapter.issuerURL, Err: err}
	}

	query := logoutURL.Query()
	query.Set("client_id", adapter.clientID)
	query.Set("post_logout_redirect_uri", postLogoutRedirectURI)
	logoutURL.RawQuery = query.Encode()

	return logoutURL.String(), nil
}

// # Discovery Cache

// discover returns the cached provider metadata, lazily refetching once the
// cache interval has elapsed.
func (adapter *OIDCAdapter) discover(ctx context.Context) (*oidc.Provider, string, error) {
	adapter.mu.Lock()
	if adapter.provider != nil && adapter.now().Sub(adapter.fetchedAt) < adapter.cacheTTL {
		provider, endSession := adapter.provider, adapter.endSessionEndpoint
		adapter.mu.Unlock()
		return provider, endSession, nil
	}
	adapter.mu.Unlock()

	// Fetch outside the lock. Two racing requests may both refetch; the
	// second result simply overwrites the first.
	callCtx, cancel := adapter.providerContext(ctx)
	defer cancel()

	provider, err := oidc.NewProvider(oidc.ClientContext(callCtx, adapter.httpClient), adapter.issuerURL)
	if err != nil {
		return nil, "", &DiscoveryError{Issuer: adapter.issuerURL, Err: err}
	}

	var metadata struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := provider.Claims(&metadata); err != nil {
		return nil, "", &DiscoveryError{Issuer: adapter.issuerURL, Err: err}
	}

	adapter.mu.Lock()
	adapter.provider = provider
	adapter.endSessionEndpoint = metadata.EndSessionEndpoint
	adapter.fetchedAt = adapter.now()
	adapter.mu.Unlock()

	return provider, metadata.EndSessionEndpoint, nil
}

// oauthConfig builds the per-domain OAuth2 client configuration.
func (adapter *OIDCAdapter) oauthConfig(provider *oidc.Provider, host string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    adapter.clientID,
		Endpoint:    provider.Endpoint(),
		RedirectURL: "https://" + host + "/api/callback",
		Scopes:      []string{oidc.ScopeOpenID, "email", "profile", oidc.ScopeOfflineAccess},
	}
}

// providerContext bounds an outbound provider call and routes it through the
// adapter's HTTP client.
func (adapter *OIDCAdapter) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithTimeout(ctx, constants.ProviderCallTimeout)
	return context.WithValue(callCtx, oauth2.HTTPClient, adapter.httpClient), cancel
}

// oidcClaims covers both standard OIDC claim names and the first_name-style
// aliases some providers emit.
type oidcClaims struct {
	Subject         string `json:"sub"`
	Email           string `json:"email"`
	GivenName       string `json:"given_name"`
	FirstName       string `json:"first_name"`
	FamilyName      string `json:"family_name"`
	LastName        string `json:"last_name"`
	Picture         string `json:"picture"`
	ProfileImageURL string `json:"profile_image_url"`
}

// firstNonEmpty returns the first non-empty string argument.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
