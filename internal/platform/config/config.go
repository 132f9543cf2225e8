// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, identity adapters) via constructors.
  - Feature Detection: Optional provider credentials are resolved once at startup
    into a capability flag; handlers never re-read environment variables.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the AlumHub API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Session Store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs the opaque session ID carried by the cookie.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// OIDC provider (primary login). One client is registered per
	// externally-visible domain; all domains share the discovered config.
	OIDCIssuerURL string   `env:"OIDC_ISSUER_URL,required"`
	OIDCClientID  string   `env:"OIDC_CLIENT_ID,required"`
	AppDomains    []string `env:"APP_DOMAINS,required" envSeparator:","`

	// Optional OAuth2 profile provider (alternate login). Presence of BOTH
	// client credentials toggles the feature; absence must not break the
	// primary login flow.
	OAuth2ClientID     string `env:"OAUTH2_CLIENT_ID"`
	OAuth2ClientSecret string `env:"OAUTH2_CLIENT_SECRET"`
	OAuth2AuthURL      string `env:"OAUTH2_AUTH_URL"    envDefault:"https://login.microsoftonline.com/common/oauth2/v2.0/authorize"`
	OAuth2TokenURL     string `env:"OAUTH2_TOKEN_URL"   envDefault:"https://login.microsoftonline.com/common/oauth2/v2.0/token"`
	OAuth2ProfileURL   string `env:"OAUTH2_PROFILE_URL" envDefault:"https://graph.microsoft.com/v1.0/me"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OAuth2Enabled reports whether the optional alternate-login provider is
// configured. Resolved once at startup; route handlers consult this flag
// instead of re-checking the environment per request.
func (c *Config) OAuth2Enabled() bool {
	return c.OAuth2ClientID != "" && c.OAuth2ClientSecret != ""
}

// PrimaryDomain returns the first configured externally-visible domain.
// Used for redirects when the request host is not in [Config.AppDomains].
func (c *Config) PrimaryDomain() string {
	if len(c.AppDomains) == 0 {
		return ""
	}
	return c.AppDomains[0]
}
