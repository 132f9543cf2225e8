// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/alumhub/alumhub/internal/platform/ctxkey"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithPrincipal returns a new context carrying the resolved login principal
// and the session ID it was resolved from.
func WithPrincipal(ctx context.Context, sessionID string, principal *identity.Principal) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeySessionID, sessionID)
	return context.WithValue(ctx, ctxkey.KeyPrincipal, principal)
}

// GetPrincipal retrieves the resolved [*identity.Principal] from the context.
// Returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *identity.Principal {
	principal, ok := ctx.Value(ctxkey.KeyPrincipal).(*identity.Principal)
	if !ok {
		return nil
	}
	return principal
}

// GetSessionID retrieves the opaque session ID backing the current principal.
// Returns an empty string for anonymous requests.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeySessionID).(string)
	return id
}
