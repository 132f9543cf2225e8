// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/alumhub/alumhub/internal/platform/constants"
)

// # OAuth2 Adapter

// OAuth2Adapter implements the alternate login flow for providers without OIDC
// discovery: a plain authorization-code exchange followed by a profile fetch
// against a fixed endpoint.
//
// The adapter is optional. When its client credentials are absent the server
// constructs no adapter at all and the corresponding routes answer 503.
type OAuth2Adapter struct {
	config     *oauth2.Config
	profileURL string
	httpClient *http.Client
}

// OAuth2Options carries the static endpoint configuration for the alternate
// provider. Defaults target the Microsoft identity platform and Graph.
type OAuth2Options struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	ProfileURL   string
}

// NewOAuth2Adapter constructs the alternate-login adapter.
//
// Callers gate construction on credential presence; this function assumes the
// options are complete.
func NewOAuth2Adapter(opts OAuth2Options) *OAuth2Adapter {
	return &OAuth2Adapter{
		config: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  opts.AuthURL,
				TokenURL: opts.TokenURL,
			},
			Scopes: []string{"openid", "email", "profile", "User.Read"},
		},
		profileURL: opts.ProfileURL,
		httpClient: &http.Client{Timeout: constants.ProviderCallTimeout},
	}
}

// BeginLogin builds the authorization redirect URL for the alternate provider.
func (adapter *OAuth2Adapter) BeginLogin(host, state string) string {
	conf := adapter.hostConfig(host)
	return conf.AuthCodeURL(state)
}

/*
CompleteLogin exchanges the authorization code and fetches the user profile.

Description: Unlike the OIDC flow there is no ID token to verify; identity
claims come from an authenticated GET against the profile endpoint.

Parameters:
  - ctx: context.Context
  - host: Domain the callback arrived on
  - code: Authorization code from the provider callback

Returns:
  - *Principal: Normalized identity with provider=oauth2 (no token expiry:
    these sessions are bounded only by the session's own TTL)
  - error: AuthExchangeError for failed exchanges or profile fetches
*/
func (adapter *OAuth2Adapter) CompleteLogin(ctx context.Context, host, code string) (*Principal, error) {
	callCtx, cancel := context.WithTimeout(ctx, constants.ProviderCallTimeout)
	defer cancel()
	callCtx = context.WithValue(callCtx, oauth2.HTTPClient, adapter.httpClient)

	conf := adapter.hostConfig(host)
	token, err := conf.Exchange(callCtx, code)
	if err != nil {
		return nil, &AuthExchangeError{Err: err}
	}

	profile, err := adapter.fetchProfile(callCtx, conf, token)
	if err != nil {
		return nil, &AuthExchangeError{Err: err}
	}
	if profile.ID == "" {
		return nil, &AuthExchangeError{Err: fmt.Errorf("profile response missing id")}
	}

	return &Principal{
		SubjectID:  profile.ID,
		Provider:   ProviderOAuth2,
		Email:      firstNonEmpty(profile.Mail, profile.UserPrincipalName),
		GivenName:  profile.GivenName,
		FamilyName: profile.Surname,
	}, nil
}

// fetchProfile retrieves the identity claims via a token-authenticated client.
func (adapter *OAuth2Adapter) fetchProfile(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*oauth2Profile, error) {
	client := conf.Client(ctx, token)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, adapter.profileURL, nil)
	if err != nil {
		return nil, err
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned status %d", response.StatusCode)
	}

	var profile oauth2Profile
	if err := json.NewDecoder(response.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return &profile, nil
}

// hostConfig clones the base config with the per-domain callback URL.
func (adapter *OAuth2Adapter) hostConfig(host string) *oauth2.Config {
	conf := *adapter.config
	conf.RedirectURL = "https://" + host + "/api/auth/oauth2-provider/callback"
	return &conf
}

// oauth2Profile mirrors the Graph-style /me payload.
type oauth2Profile struct {
	ID                string `json:"id"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	GivenName         string `json:"givenName"`
	Surname           string `json:"surname"`
}
