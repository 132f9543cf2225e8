// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package auth

import (
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
	"github.com/alumhub/alumhub/internal/platform/sec"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// # Handler Implementation

// Handler implements the browser-facing authentication endpoints.
type Handler struct {
	service *Service

	// secureCookies toggles the Secure attribute; disabled only in local
	// development over plain HTTP.
	secureCookies bool
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// PublicRoutes returns the unauthenticated flow endpoints.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	// ## Primary (OIDC) flow
	router.Get("/login", handler.beginLogin)
	router.Get("/callback", handler.loginCallback)
	router.Get("/logout", handler.logout)

	// ## Capability discovery and the optional alternate flow
	router.Get("/auth/methods", handler.authMethods)
	router.Get("/auth/oauth2-provider", handler.beginOAuth2Login)
	router.Get("/auth/oauth2-provider/callback", handler.oauth2Callback)

	return router
}

// SessionRoutes returns the endpoints requiring a resolved session.
// Mounted at /api/auth/user behind the authentication gate.
func (handler *Handler) SessionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.currentUser)

	return router
}

// # Primary Flow Endpoints

/*
GET /api/login.

Description: Starts the primary sign-in flow: generates the anti-CSRF state,
persists it in a short-lived cookie, and redirects to the provider.

Response:
  - 302: Redirect to the provider authorization URL
  - 503: SERVICE_UNAVAILABLE: Provider discovery failed
*/
func (handler *Handler) beginLogin(writer http.ResponseWriter, request *http.Request) {
	state, err := sec.GenerateSecureToken(16)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	authURL, err := handler.service.BeginOIDCLogin(request.Context(), requestHost(request), state)
	if err != nil {
		respond.Error(writer, request, translateFlowError(err))
		return
	}

	handler.setStateCookie(writer, state)
	http.Redirect(writer, request, authURL, http.StatusFound)
}

/*
GET /api/callback.

Description: Finishes the primary flow. State mismatches and failed code
exchanges restart the login instead of surfacing an error page.

Response:
  - 302: Redirect home with the session cookie set
  - 302: Redirect back to /api/login on state or exchange failures
*/
func (handler *Handler) loginCallback(writer http.ResponseWriter, request *http.Request) {
	if !handler.consumeState(writer, request) {
		http.Redirect(writer, request, "/api/login", http.StatusFound)
		return
	}

	cookieValue, err := handler.service.CompleteOIDCLogin(request.Context(), requestHost(request), request.URL.Query().Get("code"))
	if err != nil {
		handler.handleCallbackError(writer, request, err, "/api/login")
		return
	}

	handler.setSessionCookie(writer, cookieValue)
	http.Redirect(writer, request, "/", http.StatusFound)
}

/*
GET /api/logout.

Description: Destroys the session, clears the cookie, and sends OIDC logins
through the provider's end-session endpoint when available.

Response:
  - 302: Redirect to the provider end-session URL or home
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	provider := identity.ProviderOIDC
	if principal := ctxutil.GetPrincipal(request.Context()); principal != nil {
		provider = principal.Provider
	}

	homeURL := "https://" + requestHost(request)
	target, err := handler.service.Logout(request.Context(), ctxutil.GetSessionID(request.Context()), provider, homeURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	http.Redirect(writer, request, target, http.StatusFound)
}

// # Capability & Alternate Flow Endpoints

/*
GET /api/auth/methods.

Response:
  - 200: Methods: Which sign-in flows this deployment offers
*/
func (handler *Handler) authMethods(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.AvailableMethods())
}

/*
GET /api/auth/oauth2-provider.

Response:
  - 302: Redirect to the alternate provider
  - 503: NOT_CONFIGURED: No alternate provider credentials
*/
func (handler *Handler) beginOAuth2Login(writer http.ResponseWriter, request *http.Request) {
	state, err := sec.GenerateSecureToken(16)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	authURL, err := handler.service.BeginOAuth2Login(requestHost(request), state)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setStateCookie(writer, state)
	http.Redirect(writer, request, authURL, http.StatusFound)
}

/*
GET /api/auth/oauth2-provider/callback.

Response:
  - 302: Redirect home with the session cookie set
  - 302: Redirect back to the alternate begin-login on failures
  - 503: NOT_CONFIGURED: No alternate provider credentials
*/
func (handler *Handler) oauth2Callback(writer http.ResponseWriter, request *http.Request) {
	if !handler.consumeState(writer, request) {
		http.Redirect(writer, request, "/api/auth/oauth2-provider", http.StatusFound)
		return
	}

	cookieValue, err := handler.service.CompleteOAuth2Login(request.Context(), requestHost(request), request.URL.Query().Get("code"))
	if err != nil {
		handler.handleCallbackError(writer, request, err, "/api/auth/oauth2-provider")
		return
	}

	handler.setSessionCookie(writer, cookieValue)
	http.Redirect(writer, request, "/", http.StatusFound)
}

// # Session Endpoints

/*
GET /api/auth/user.

Description: Returns the fresh membership record of the logged-in user,
including lifecycle status and the admin flag. The frontend keys its UI on
this response.

Response:
  - 200: member.User: Current user
  - 401: UNAUTHORIZED: No session
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CurrentUser(request.Context(), subjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Flow Helpers

// consumeState validates and clears the anti-CSRF state cookie.
func (handler *Handler) consumeState(writer http.ResponseWriter, request *http.Request) bool {
	expected, err := request.Cookie(constants.StateCookieName)
	handler.clearStateCookie(writer)

	if err != nil || expected.Value == "" {
		return false
	}
	return request.URL.Query().Get("state") == expected.Value
}

// handleCallbackError maps provider failures: exchange problems restart the
// flow, infrastructure problems surface as API errors.
func (handler *Handler) handleCallbackError(writer http.ResponseWriter, request *http.Request, err error, retryPath string) {
	var exchangeErr *identity.AuthExchangeError
	if errors.As(err, &exchangeErr) {
		http.Redirect(writer, request, retryPath, http.StatusFound)
		return
	}

	respond.Error(writer, request, translateFlowError(err))
}

// translateFlowError converts identity-layer failures into client-safe errors.
func translateFlowError(err error) error {
	var discoveryErr *identity.DiscoveryError
	if errors.As(err, &discoveryErr) {
		return apperr.ServiceUnavailable("Sign-in is temporarily unavailable")
	}
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Internal(err)
}

// requestHost returns the request host without any port suffix.
func requestHost(request *http.Request) string {
	if host, _, err := net.SplitHostPort(request.Host); err == nil {
		return host
	}
	return request.Host
}

// # Cookie Management

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, value string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(constants.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) setStateCookie(writer http.ResponseWriter, state string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.StateCookieName,
		Value:    state,
		Path:     "/api",
		MaxAge:   int(constants.StateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearStateCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.StateCookieName,
		Value:    "",
		Path:     "/api",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
