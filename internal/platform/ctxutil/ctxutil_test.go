// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	"github.com/alumhub/alumhub/internal/users/identity"
)

/*
TestRequestID_RoundTrip verifies storing and retrieving the request ID.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestRequestID_Missing verifies the zero value for an untouched context.
*/
func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

/*
TestLogger_FallsBackToDefault verifies GetLogger never returns nil.
*/
func TestLogger_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, ctxutil.GetLogger(context.Background()))

	custom := slog.Default().With(slog.String("component", "test"))
	ctx := ctxutil.WithLogger(context.Background(), custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestPrincipal_RoundTrip verifies the principal and its session ID travel
together through the context.
*/
func TestPrincipal_RoundTrip(t *testing.T) {
	principal := &identity.Principal{SubjectID: "subject-1", Provider: identity.ProviderOIDC}

	ctx := ctxutil.WithPrincipal(context.Background(), "session-abc", principal)

	assert.Same(t, principal, ctxutil.GetPrincipal(ctx))
	assert.Equal(t, "session-abc", ctxutil.GetSessionID(ctx))
}

/*
TestPrincipal_Anonymous verifies anonymous contexts resolve to nil.
*/
func TestPrincipal_Anonymous(t *testing.T) {
	assert.Nil(t, ctxutil.GetPrincipal(context.Background()))
	assert.Empty(t, ctxutil.GetSessionID(context.Background()))
}
