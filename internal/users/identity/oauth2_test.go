// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeOAuth2Provider serves a token endpoint and a profile endpoint with a
// configurable profile payload.
func newFakeOAuth2Provider(t *testing.T, profileJSON string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"graph-access-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer graph-access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(profileJSON))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newTestOAuth2Adapter(server *httptest.Server) *OAuth2Adapter {
	return NewOAuth2Adapter(OAuth2Options{
		ClientID:     "alt-client-id",
		ClientSecret: "alt-client-secret",
		AuthURL:      server.URL + "/authorize",
		TokenURL:     server.URL + "/token",
		ProfileURL:   server.URL + "/me",
	})
}

/*
TestOAuth2Adapter_BeginLogin verifies the redirect URL targets the alternate
callback route for the requesting domain.
*/
func TestOAuth2Adapter_BeginLogin(t *testing.T) {
	server := newFakeOAuth2Provider(t, `{}`)
	adapter := newTestOAuth2Adapter(server)

	rawURL := adapter.BeginLogin("alumhub.app", "anti-csrf-state")

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "alt-client-id", query.Get("client_id"))
	assert.Equal(t, "https://alumhub.app/api/auth/oauth2-provider/callback", query.Get("redirect_uri"))
	assert.Equal(t, "anti-csrf-state", query.Get("state"))
}

/*
TestOAuth2Adapter_CompleteLogin verifies the exchange-then-profile-fetch flow
maps provider fields onto a Principal.
*/
func TestOAuth2Adapter_CompleteLogin(t *testing.T) {
	server := newFakeOAuth2Provider(t, `{
		"id": "graph-user-42",
		"mail": "dana@example.edu",
		"userPrincipalName": "dana_fallback@example.edu",
		"givenName": "Dana",
		"surname": "Whitfield"
	}`)
	adapter := newTestOAuth2Adapter(server)

	principal, err := adapter.CompleteLogin(context.Background(), "alumhub.app", "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "graph-user-42", principal.SubjectID)
	assert.Equal(t, ProviderOAuth2, principal.Provider)
	assert.Equal(t, "dana@example.edu", principal.Email)
	assert.Equal(t, "Dana", principal.GivenName)
	assert.Equal(t, "Whitfield", principal.FamilyName)
	assert.Zero(t, principal.ExpiresAt)
}

/*
TestOAuth2Adapter_CompleteLogin_PrincipalNameFallback verifies the principal
name stands in for a missing mail field.
*/
func TestOAuth2Adapter_CompleteLogin_PrincipalNameFallback(t *testing.T) {
	server := newFakeOAuth2Provider(t, `{
		"id": "graph-user-7",
		"userPrincipalName": "jordan@example.edu",
		"givenName": "Jordan",
		"surname": "Liu"
	}`)
	adapter := newTestOAuth2Adapter(server)

	principal, err := adapter.CompleteLogin(context.Background(), "alumhub.app", "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "jordan@example.edu", principal.Email)
}

/*
TestOAuth2Adapter_CompleteLogin_MissingID verifies a profile without a subject
identifier is rejected as an exchange failure.
*/
func TestOAuth2Adapter_CompleteLogin_MissingID(t *testing.T) {
	server := newFakeOAuth2Provider(t, `{"givenName": "Nobody"}`)
	adapter := newTestOAuth2Adapter(server)

	_, err := adapter.CompleteLogin(context.Background(), "alumhub.app", "auth-code")

	var exchangeErr *AuthExchangeError
	require.ErrorAs(t, err, &exchangeErr)
}
