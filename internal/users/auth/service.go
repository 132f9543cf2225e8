// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package auth implements the login, callback, and logout flows.

It glues together the identity adapters (provider protocol), the session
manager (server-side state), and the membership service (user upsert) behind
the browser-facing redirect endpoints.

# Architecture

No business rules live here: the provider semantics sit in
[internal/users/identity], session semantics in [internal/users/session], and
membership semantics in [internal/users/member]. This package only sequences
them and speaks HTTP redirects.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/users/identity"
	"github.com/alumhub/alumhub/internal/users/member"
	"github.com/alumhub/alumhub/internal/users/session"
)

// MemberDirectory is the slice of the membership service the login flow needs.
type MemberDirectory interface {
	UpsertFromLogin(context context.Context, principal *identity.Principal) (*member.User, error)
	GetUser(context context.Context, userID string) (*member.User, error)
}

// Methods describes which sign-in flows the deployment offers.
type Methods struct {
	OIDC   bool `json:"oidc"`
	OAuth2 bool `json:"oauth2"`
}

// # Service Layer

// Service orchestrates the authentication flows.
//
// The OAuth2 adapter is optional: a nil adapter means the deployment has no
// alternate provider credentials and its routes answer 503.
type Service struct {
	oidc     *identity.OIDCAdapter
	oauth2   *identity.OAuth2Adapter
	sessions *session.Manager
	members  MemberDirectory
	logger   *slog.Logger
}

// NewService constructs the auth [Service].
func NewService(
	oidc *identity.OIDCAdapter,
	oauth2 *identity.OAuth2Adapter,
	sessions *session.Manager,
	members MemberDirectory,
	logger *slog.Logger,
) *Service {
	return &Service{
		oidc:     oidc,
		oauth2:   oauth2,
		sessions: sessions,
		members:  members,
		logger:   logger,
	}
}

// AvailableMethods reports the sign-in flows this deployment offers.
//
// Resolved from credential presence at startup — never from per-request
// environment reads.
func (service *Service) AvailableMethods() Methods {
	return Methods{OIDC: true, OAuth2: service.oauth2 != nil}
}

// # Primary (OIDC) Flow

/*
BeginOIDCLogin builds the provider redirect for the primary sign-in flow.

Parameters:
  - context: context.Context
  - host: Request host (must be a registered app domain)
  - state: Anti-CSRF value also persisted in a short-lived cookie

Returns:
  - string: Provider authorization URL
  - error: Discovery or unknown-domain failures
*/
func (service *Service) BeginOIDCLogin(context context.Context, host, state string) (string, error) {
	return service.oidc.BeginLogin(context, host, state)
}

/*
CompleteOIDCLogin finishes the primary flow on the provider callback.

Description: Exchanges the code, syncs the user row (display fields only),
and establishes the server-side session.

Parameters:
  - context: context.Context
  - host: Callback host
  - code: Authorization code

Returns:
  - string: Signed session cookie value
  - error: Exchange, upsert, or session failures
*/
func (service *Service) CompleteOIDCLogin(context context.Context, host, code string) (string, error) {
	principal, err := service.oidc.CompleteLogin(context, host, code)
	if err != nil {
		return "", err
	}
	return service.establish(context, principal)
}

// # Alternate (OAuth2) Flow

// errNotConfigured is the shared response for alternate-provider routes hit
// while the credentials are absent.
var errNotConfigured = apperr.NotConfigured("Alternate sign-in is not configured")

/*
BeginOAuth2Login builds the provider redirect for the alternate flow.

Parameters:
  - host: Request host
  - state: Anti-CSRF value

Returns:
  - string: Provider authorization URL
  - error: apperr.NotConfigured when no credentials are present
*/
func (service *Service) BeginOAuth2Login(host, state string) (string, error) {
	if service.oauth2 == nil {
		return "", errNotConfigured
	}
	return service.oauth2.BeginLogin(host, state), nil
}

/*
CompleteOAuth2Login finishes the alternate flow on the provider callback.

Parameters:
  - context: context.Context
  - host: Callback host
  - code: Authorization code

Returns:
  - string: Signed session cookie value
  - error: apperr.NotConfigured, exchange, or session failures
*/
func (service *Service) CompleteOAuth2Login(context context.Context, host, code string) (string, error) {
	if service.oauth2 == nil {
		return "", errNotConfigured
	}

	principal, err := service.oauth2.CompleteLogin(context, host, code)
	if err != nil {
		return "", err
	}
	return service.establish(context, principal)
}

// # Shared Steps

// establish syncs the membership row and creates the session.
func (service *Service) establish(context context.Context, principal *identity.Principal) (string, error) {
	user, err := service.members.UpsertFromLogin(context, principal)
	if err != nil {
		return "", err
	}

	cookieValue, record, err := service.sessions.Establish(context, principal)
	if err != nil {
		return "", fmt.Errorf("auth_service_establish_session_failed: %w", err)
	}

	service.logger.Info("user_logged_in",
		slog.String("user_id", user.ID),
		slog.String("provider", string(principal.Provider)),
		slog.String("session_id", record.ID),
		slog.String("status", string(user.Status)),
	)

	return cookieValue, nil
}

// # Session Teardown

/*
Logout destroys the session and computes the post-logout redirect.

Description: OIDC logins are sent through the provider's end-session endpoint
when it advertises one; everything else goes straight home.

Parameters:
  - context: context.Context
  - sessionID: The resolved session to destroy (empty for anonymous callers)
  - provider: Provider of the departing principal
  - homeURL: Absolute URL of the app landing page

Returns:
  - string: Redirect target for the browser
  - error: Session deletion failures
*/
func (service *Service) Logout(context context.Context, sessionID string, provider identity.Provider, homeURL string) (string, error) {
	if sessionID != "" {
		if err := service.sessions.Destroy(context, sessionID); err != nil {
			return "", fmt.Errorf("auth_service_logout_failed: %w", err)
		}
		service.logger.Info("user_logged_out", slog.String("session_id", sessionID))
	}

	// Only the OIDC provider has an end-session concept.
	if provider == identity.ProviderOIDC {
		endSessionURL, err := service.oidc.EndSessionURL(context, homeURL)
		if err == nil && endSessionURL != "" {
			return endSessionURL, nil
		}
		// Provider unreachable: the local session is already gone, so a
		// plain home redirect is the right degradation.
	}

	return homeURL, nil
}

// # Current User

/*
CurrentUser returns the membership record behind the resolved principal.

Parameters:
  - context: context.Context
  - subjectID: string

Returns:
  - *member.User: Fresh row including status and admin flag
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) CurrentUser(context context.Context, subjectID string) (*member.User, error) {
	return service.members.GetUser(context, subjectID)
}
