// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	"github.com/alumhub/alumhub/internal/platform/middleware"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// fakeResolver maps signed cookie values to principals.
type fakeResolver struct {
	sessions map[string]*identity.Principal
}

func (resolver *fakeResolver) Resolve(_ context.Context, signedValue string) (string, *identity.Principal, error) {
	principal, found := resolver.sessions[signedValue]
	if !found {
		return "", nil, errors.New("no session")
	}
	return "session-" + signedValue, principal, nil
}

// fakeLoader maps subject IDs to membership snapshots.
type fakeLoader struct {
	access map[string]*middleware.AccessRecord
}

func (loader *fakeLoader) LoadAccess(_ context.Context, subjectID string) (*middleware.AccessRecord, error) {
	access, found := loader.access[subjectID]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return access, nil
}

// okHandler records that the gate let the request through.
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*reached = true
		writer.WriteHeader(http.StatusOK)
	})
}

func withPrincipal(request *http.Request, subjectID string) *http.Request {
	principal := &identity.Principal{SubjectID: subjectID, Provider: identity.ProviderOIDC}
	ctx := ctxutil.WithPrincipal(request.Context(), "session-1", principal)
	return request.WithContext(ctx)
}

/*
TestResolveSession verifies cookie resolution attaches the principal and that
missing or invalid cookies degrade to anonymous rather than failing.
*/
func TestResolveSession(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*identity.Principal{
		"good-cookie": {SubjectID: "subject-1", Provider: identity.ProviderOIDC},
	}}

	var captured *identity.Principal
	handler := middleware.ResolveSession(resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		cookie     string
		wantBody   bool
		wantStatus int
	}{
		{"valid_cookie", "good-cookie", true, http.StatusOK},
		{"unknown_cookie", "forged-cookie", false, http.StatusOK},
		{"no_cookie", "", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = nil
			request := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.cookie})
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody {
				assert.NotNil(t, captured)
				assert.Equal(t, "subject-1", captured.SubjectID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

/*
TestRequireAuth verifies anonymous requests receive 401.
*/
func TestRequireAuth(t *testing.T) {
	var reached bool
	handler := middleware.RequireAuth(okHandler(&reached))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, reached)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, withPrincipal(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), "subject-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, reached)
}

/*
TestRequireApprovedMember covers the approval gate, including the
401-before-403 ordering and the fresh-load semantics for unknown subjects.
*/
func TestRequireApprovedMember(t *testing.T) {
	loader := &fakeLoader{access: map[string]*middleware.AccessRecord{
		"approved-subject": {Approved: true},
		"pending-subject":  {Approved: false},
		"admin-only":       {Approved: false, Admin: true},
	}}

	tests := []struct {
		name       string
		subjectID  string
		anonymous  bool
		wantStatus int
	}{
		{"anonymous_gets_401", "", true, http.StatusUnauthorized},
		{"approved_passes", "approved-subject", false, http.StatusOK},
		{"pending_gets_403", "pending-subject", false, http.StatusForbidden},
		{"unapproved_admin_gets_403", "admin-only", false, http.StatusForbidden},
		{"missing_user_row_gets_403", "ghost-subject", false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			handler := middleware.RequireApprovedMember(loader)(okHandler(&reached))

			request := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if !tt.anonymous {
				request = withPrincipal(request, tt.subjectID)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}

/*
TestRequireAdmin verifies the admin gate is independent of approval status.
*/
func TestRequireAdmin(t *testing.T) {
	loader := &fakeLoader{access: map[string]*middleware.AccessRecord{
		"plain-member":     {Approved: true},
		"approved-admin":   {Approved: true, Admin: true},
		"unapproved-admin": {Approved: false, Admin: true},
	}}

	tests := []struct {
		name       string
		subjectID  string
		anonymous  bool
		wantStatus int
	}{
		{"anonymous_gets_401", "", true, http.StatusUnauthorized},
		{"member_gets_403", "plain-member", false, http.StatusForbidden},
		{"approved_admin_passes", "approved-admin", false, http.StatusOK},
		{"unapproved_admin_passes", "unapproved-admin", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			handler := middleware.RequireAdmin(loader)(okHandler(&reached))

			request := httptest.NewRequest(http.MethodGet, "/api/admin/pending-users", nil)
			if !tt.anonymous {
				request = withPrincipal(request, tt.subjectID)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
