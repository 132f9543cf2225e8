// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package middleware

import (
	"context"
	"net/http"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	"github.com/alumhub/alumhub/internal/platform/respond"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// SessionResolver turns a signed session cookie value into a login principal.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the session
// manager implementation, allowing us to easily inject mocks during unit testing.
type SessionResolver interface {
	// Resolve returns the session ID and principal for a valid cookie value.
	// Any failure (bad signature, missing session, dead refresh token) means
	// the request proceeds as anonymous.
	Resolve(ctx context.Context, signedValue string) (string, *identity.Principal, error)
}

// AccessRecord is the fresh per-request membership snapshot the gates act on.
type AccessRecord struct {
	Approved bool
	Admin    bool
}

// UserLoader fetches the current membership flags for a subject.
//
// Gates never trust anything cached in the session: a revoked membership or
// removed admin flag takes effect on the very next request.
type UserLoader interface {
	LoadAccess(ctx context.Context, subjectID string) (*AccessRecord, error)
}

// ResolveSession reads the session cookie and attaches the resolved principal
// to the request context.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve it (signature check, session lookup, transparent
//     token refresh) via [SessionResolver].
//  4. On any resolution failure the request also proceeds as anonymous; the
//     per-route gates decide whether anonymity is acceptable.
func ResolveSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			sessionID, principal, err := resolver.Resolve(request.Context(), cookie.Value)
			if err != nil || principal == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), sessionID, principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that did not resolve to a principal.
//
// # Usage
//
// Must be registered in the router AFTER [ResolveSession].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireApprovedMember blocks requests from principals whose membership is
// not currently approved.
//
// # Usage
//
// Must be registered AFTER [ResolveSession]. It implies [RequireAuth]: an
// anonymous caller always receives 401 here, never 403.
//
// The membership snapshot is loaded fresh on every request; approval status
// cached nowhere.
func RequireApprovedMember(loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			access, err := loadAccess(request, loader)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if !access.Approved {
				respond.Error(writer, request, apperr.Forbidden("Membership approval required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAdmin blocks requests from principals without the admin flag.
//
// # Usage
//
// Must be registered AFTER [ResolveSession]. It implies [RequireAuth].
//
// Admin access is independent of approval status: the gates test exactly one
// predicate each.
func RequireAdmin(loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			access, err := loadAccess(request, loader)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if !access.Admin {
				respond.Error(writer, request, apperr.Forbidden("Administrator access required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// loadAccess performs the shared 401-before-403 check and fetches the fresh
// membership snapshot for the resolved principal.
func loadAccess(request *http.Request, loader UserLoader) (*AccessRecord, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	access, err := loader.LoadAccess(request.Context(), principal.SubjectID)
	if err != nil {
		// A principal without a user row cannot hold any membership grant.
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return &AccessRecord{}, nil
		}
		return nil, err
	}

	return access, nil
}
