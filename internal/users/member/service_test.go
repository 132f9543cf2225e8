// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package member

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// memoryRepository is an in-memory Repository mirroring the store semantics.
type memoryRepository struct {
	users         map[string]*User
	exits         []CommunityExit
	announcements []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[string]*User)}
}

func (repository *memoryRepository) UpsertFromLogin(_ context.Context, user *User) (*User, error) {
	existing, found := repository.users[user.ID]
	if !found {
		clone := *user
		clone.Status = StatusPending
		repository.users[user.ID] = &clone
	} else {
		// Display fields only; status and admin flag survive logins.
		existing.Email = user.Email
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
	}
	clone := *repository.users[user.ID]
	return &clone, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, found := repository.users[id]
	if !found {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repository *memoryRepository) ListByStatus(_ context.Context, status Status) ([]*User, error) {
	var users []*User
	for _, user := range repository.users {
		if user.Status == status {
			clone := *user
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (repository *memoryRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	user, found := repository.users[id]
	if !found {
		return apperr.NotFound("User")
	}
	user.Status = status
	return nil
}

func (repository *memoryRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	user, found := repository.users[id]
	if !found {
		return apperr.NotFound("User")
	}
	user.IsAdmin = isAdmin
	return nil
}

func (repository *memoryRepository) UpdateProfile(_ context.Context, user *User) error {
	stored, found := repository.users[user.ID]
	if !found {
		return apperr.NotFound("User")
	}
	*stored = *user
	return nil
}

func (repository *memoryRepository) ExitCommunity(_ context.Context, userID, reason, announcement string) (bool, error) {
	user, found := repository.users[userID]
	if !found {
		return false, apperr.NotFound("User")
	}
	if user.Status == StatusRejected {
		return false, nil
	}
	repository.exits = append(repository.exits, CommunityExit{UserID: userID, Reason: reason})
	repository.announcements = append(repository.announcements, announcement)
	user.Status = StatusRejected
	return true, nil
}

func newTestService() (*Service, *memoryRepository) {
	repository := newMemoryRepository()
	return NewService(repository, slog.Default()), repository
}

func oidcPrincipal() *identity.Principal {
	return &identity.Principal{
		SubjectID:  "subject-1",
		Provider:   identity.ProviderOIDC,
		Email:      "dana@example.edu",
		GivenName:  "Dana",
		FamilyName: "Whitfield",
	}
}

/*
TestService_UpsertFromLogin verifies the first login creates a pending user
and later logins only refresh display fields.
*/
func TestService_UpsertFromLogin(t *testing.T) {
	service, repository := newTestService()

	user, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, user.Status)
	assert.False(t, user.IsAdmin)

	// Approve, then log in again with a changed name.
	require.NoError(t, service.Approve(context.Background(), "subject-1"))

	principal := oidcPrincipal()
	principal.GivenName = "Dayna"

	user, err = service.UpsertFromLogin(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, "Dayna", user.FirstName)
	assert.Equal(t, StatusApproved, user.Status, "login must not touch lifecycle state")

	_ = repository
}

/*
TestService_RejectionSticky verifies a rejected alum stays rejected across
fresh logins.
*/
func TestService_RejectionSticky(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)
	require.NoError(t, service.Reject(context.Background(), "subject-1"))

	user, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, user.Status)
}

/*
TestService_AdminLifecycle verifies promote and demote flip only the admin flag.
*/
func TestService_AdminLifecycle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)

	require.NoError(t, service.Promote(context.Background(), "subject-1"))
	user, err := service.GetUser(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, StatusPending, user.Status, "promotion must not imply approval")

	require.NoError(t, service.Demote(context.Background(), "subject-1"))
	user, err = service.GetUser(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

/*
TestService_UpdateProfile verifies delta updates and field validation.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)

	year := 2012
	major := "Computer Science"
	user, err := service.UpdateProfile(context.Background(), "subject-1", UpdateProfileInput{
		GraduationYear: &year,
		Major:          &major,
	})
	require.NoError(t, err)
	assert.Equal(t, 2012, *user.GraduationYear)
	assert.Equal(t, "Computer Science", *user.Major)

	badYear := 1537
	_, err = service.UpdateProfile(context.Background(), "subject-1", UpdateProfileInput{GraduationYear: &badYear})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_ExitCommunity verifies the departure flow: audit, announcement
with the display name, demotion, and the idempotent no-op on repeat.
*/
func TestService_ExitCommunity(t *testing.T) {
	service, repository := newTestService()

	_, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)
	require.NoError(t, service.Approve(context.Background(), "subject-1"))

	require.NoError(t, service.ExitCommunity(context.Background(), "subject-1", "moving on"))

	require.Len(t, repository.exits, 1)
	assert.Equal(t, "moving on", repository.exits[0].Reason)
	require.Len(t, repository.announcements, 1)
	assert.Equal(t, "Dana Whitfield has left the community.", repository.announcements[0])

	user, err := service.GetUser(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, user.Status)

	// A second exit is a complete no-op: no new audit row, no new announcement.
	require.NoError(t, service.ExitCommunity(context.Background(), "subject-1", "again"))
	assert.Len(t, repository.exits, 1)
	assert.Len(t, repository.announcements, 1)
}

/*
TestService_LoadAccess verifies the gate snapshot reflects the stored flags.
*/
func TestService_LoadAccess(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpsertFromLogin(context.Background(), oidcPrincipal())
	require.NoError(t, err)

	access, err := service.LoadAccess(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.False(t, access.Approved)
	assert.False(t, access.Admin)

	require.NoError(t, service.Approve(context.Background(), "subject-1"))
	require.NoError(t, service.Promote(context.Background(), "subject-1"))

	access, err = service.LoadAccess(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.True(t, access.Approved)
	assert.True(t, access.Admin)

	_, err = service.LoadAccess(context.Background(), "ghost")
	require.Error(t, err)
}
