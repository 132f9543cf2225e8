// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// memoryRepository is an in-memory Repository honoring the absolute deadline.
type memoryRepository struct {
	records map[string]*Session
	now     func() time.Time
}

func newMemoryRepository(now func() time.Time) *memoryRepository {
	return &memoryRepository{records: make(map[string]*Session), now: now}
}

func (repository *memoryRepository) Create(_ context.Context, record *Session) error {
	clone := *record
	repository.records[record.ID] = &clone
	return nil
}

func (repository *memoryRepository) Find(_ context.Context, sessionID string) (*Session, error) {
	record, found := repository.records[sessionID]
	if !found || record.Expired(repository.now()) {
		return nil, apperr.NotFound("Session")
	}
	clone := *record
	return &clone, nil
}

func (repository *memoryRepository) UpdatePrincipal(_ context.Context, sessionID string, principal *identity.Principal) error {
	record, found := repository.records[sessionID]
	if !found {
		return apperr.NotFound("Session")
	}
	record.Principal = *principal
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, sessionID string) error {
	delete(repository.records, sessionID)
	return nil
}

// scriptedRefresher returns a fixed token set or a fixed error.
type scriptedRefresher struct {
	tokens *identity.TokenSet
	err    error
	calls  int
}

func (refresher *scriptedRefresher) Refresh(_ context.Context, _ string) (*identity.TokenSet, error) {
	refresher.calls++
	if refresher.err != nil {
		return nil, refresher.err
	}
	return refresher.tokens, nil
}

// newTestManager wires a manager over the in-memory store with a movable clock.
func newTestManager(refresher TokenRefresher, clock *time.Time) (*Manager, *memoryRepository) {
	now := func() time.Time { return *clock }
	repository := newMemoryRepository(now)
	manager := NewManager(repository, refresher, "test-secret")
	manager.now = now
	return manager, repository
}

func oidcPrincipal(expiresAt time.Time) *identity.Principal {
	return &identity.Principal{
		SubjectID:    "subject-1",
		Provider:     identity.ProviderOIDC,
		Email:        "alum@example.edu",
		AccessToken:  "original-access",
		RefreshToken: "original-refresh",
		ExpiresAt:    expiresAt.Unix(),
	}
}

/*
TestManager_EstablishAndResolve verifies the login round trip: a cookie value
issued by Establish resolves back to the same principal.
*/
func TestManager_EstablishAndResolve(t *testing.T) {
	clock := time.Now()
	manager, _ := newTestManager(&scriptedRefresher{}, &clock)

	cookieValue, record, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(time.Hour)))
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, clock.Add(manager.ttl).Unix(), record.ExpiresAt.Unix())

	sessionID, principal, err := manager.Resolve(context.Background(), cookieValue)
	require.NoError(t, err)
	assert.Equal(t, record.ID, sessionID)
	assert.Equal(t, "subject-1", principal.SubjectID)
	assert.Equal(t, "original-access", principal.AccessToken)
}

/*
TestManager_Resolve_TamperedCookie verifies forged cookie values never reach
the store.
*/
func TestManager_Resolve_TamperedCookie(t *testing.T) {
	clock := time.Now()
	manager, _ := newTestManager(&scriptedRefresher{}, &clock)

	cookieValue, _, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(time.Hour)))
	require.NoError(t, err)

	_, _, err = manager.Resolve(context.Background(), "x"+cookieValue)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

/*
TestManager_Resolve_TransparentRefresh verifies an expired access token is
refreshed in place and the rotated tokens persisted.
*/
func TestManager_Resolve_TransparentRefresh(t *testing.T) {
	clock := time.Now()
	refresher := &scriptedRefresher{tokens: &identity.TokenSet{
		AccessToken:  "refreshed-access",
		RefreshToken: "rotated-refresh",
		ExpiresAt:    clock.Add(2 * time.Hour).Unix(),
	}}
	manager, repository := newTestManager(refresher, &clock)

	cookieValue, record, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(time.Hour)))
	require.NoError(t, err)

	// Move past the access-token expiry but stay inside the session TTL.
	clock = clock.Add(90 * time.Minute)

	sessionID, principal, err := manager.Resolve(context.Background(), cookieValue)
	require.NoError(t, err)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, "refreshed-access", principal.AccessToken)
	assert.Equal(t, "rotated-refresh", principal.RefreshToken)

	// The refreshed tokens must be persisted for the next request.
	stored, err := repository.Find(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-access", stored.Principal.AccessToken)
	assert.Equal(t, record.ExpiresAt.Unix(), stored.ExpiresAt.Unix())
}

/*
TestManager_Resolve_RefreshKeepsPreviousTokenWhenNotRotated verifies a grant
without a new refresh token keeps the stored one.
*/
func TestManager_Resolve_RefreshKeepsPreviousTokenWhenNotRotated(t *testing.T) {
	clock := time.Now()
	refresher := &scriptedRefresher{tokens: &identity.TokenSet{
		AccessToken: "refreshed-access",
		ExpiresAt:   clock.Add(2 * time.Hour).Unix(),
	}}
	manager, _ := newTestManager(refresher, &clock)

	cookieValue, _, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(-time.Minute)))
	require.NoError(t, err)

	_, principal, err := manager.Resolve(context.Background(), cookieValue)
	require.NoError(t, err)
	assert.Equal(t, "original-refresh", principal.RefreshToken)
}

/*
TestManager_Resolve_FailedRefresh verifies a dead refresh token makes the
request unauthenticated without destroying the session record.
*/
func TestManager_Resolve_FailedRefresh(t *testing.T) {
	clock := time.Now()
	refresher := &scriptedRefresher{err: &identity.RefreshError{Err: errors.New("invalid_grant")}}
	manager, repository := newTestManager(refresher, &clock)

	cookieValue, record, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(-time.Minute)))
	require.NoError(t, err)

	_, _, err = manager.Resolve(context.Background(), cookieValue)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// The session record survives untouched.
	stored, err := repository.Find(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, "original-access", stored.Principal.AccessToken)
}

/*
TestManager_Resolve_AbsoluteTTL verifies a session past its absolute deadline
is unauthenticated even with a live refresh token on file.
*/
func TestManager_Resolve_AbsoluteTTL(t *testing.T) {
	clock := time.Now()
	refresher := &scriptedRefresher{tokens: &identity.TokenSet{AccessToken: "never-used"}}
	manager, _ := newTestManager(refresher, &clock)

	cookieValue, _, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(time.Hour)))
	require.NoError(t, err)

	clock = clock.Add(manager.ttl + time.Minute)

	_, _, err = manager.Resolve(context.Background(), cookieValue)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, refresher.calls)
}

/*
TestManager_Resolve_OAuth2NeverRefreshes verifies OAuth2 principals resolve
without any refresh machinery.
*/
func TestManager_Resolve_OAuth2NeverRefreshes(t *testing.T) {
	clock := time.Now()
	refresher := &scriptedRefresher{err: errors.New("must not be called")}
	manager, _ := newTestManager(refresher, &clock)

	principal := &identity.Principal{SubjectID: "graph-user", Provider: identity.ProviderOAuth2}
	cookieValue, _, err := manager.Establish(context.Background(), principal)
	require.NoError(t, err)

	clock = clock.Add(48 * time.Hour)

	_, resolved, err := manager.Resolve(context.Background(), cookieValue)
	require.NoError(t, err)
	assert.Equal(t, "graph-user", resolved.SubjectID)
	assert.Zero(t, refresher.calls)
}

/*
TestManager_Destroy verifies logout removes the record and later resolution
fails.
*/
func TestManager_Destroy(t *testing.T) {
	clock := time.Now()
	manager, _ := newTestManager(&scriptedRefresher{}, &clock)

	cookieValue, record, err := manager.Establish(context.Background(), oidcPrincipal(clock.Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, manager.Destroy(context.Background(), record.ID))

	_, _, err = manager.Resolve(context.Background(), cookieValue)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
