// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumhub/alumhub/internal/platform/middleware"
	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// # Service Layer

// Service orchestrates business logic for the membership lifecycle.
//
// It owns the login upsert, the admin approve/reject/promote/demote
// operations, profile updates, and the voluntary exit flow.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// # Login Integration

/*
UpsertFromLogin syncs a provider principal into the users table.

Description: A first login creates a pending user; every later login only
refreshes display fields. Lifecycle state survives logins untouched, which is
what makes rejection sticky.

Parameters:
  - context: context.Context
  - principal: *identity.Principal

Returns:
  - *User: The stored membership record
  - error: Persistence failures
*/
func (service *Service) UpsertFromLogin(context context.Context, principal *identity.Principal) (*User, error) {
	user, err := service.repository.UpsertFromLogin(context, &User{
		ID:              principal.SubjectID,
		Email:           principal.Email,
		FirstName:       principal.GivenName,
		LastName:        principal.FamilyName,
		ProfileImageURL: principal.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("member_service_login_upsert_failed: %w", err)
	}

	service.logger.Info("user_login_synced",
		slog.String("user_id", user.ID),
		slog.String("status", string(user.Status)),
	)

	return user, nil
}

// # Profile

/*
GetUser retrieves the membership record for a subject ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: Not found or execution failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*User, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("member_service_get_user_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of alum profile fields.
type UpdateProfileInput struct {
	GraduationYear *int
	Major          *string
	Company        *string
	JobTitle       *string
	Location       *string
	Bio            *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *User: The updated membership record
  - error: Validation, lookup, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {

	// Validate the provided fields
	v := &validate.Validator{}
	if input.GraduationYear != nil {
		v.Range(FieldGraduationYear, *input.GraduationYear, 1900, time.Now().Year()+10)
	}
	if input.Bio != nil {
		v.MaxLen(FieldBio, *input.Bio, 2000)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Fetch the current state
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("member_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.GraduationYear != nil {
		user.GraduationYear = input.GraduationYear
	}
	if input.Major != nil {
		user.Major = input.Major
	}
	if input.Company != nil {
		user.Company = input.Company
	}
	if input.JobTitle != nil {
		user.JobTitle = input.JobTitle
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}

	// Persist changes
	if err := service.repository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("member_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
ListMembers returns the approved member directory.

Parameters:
  - context: context.Context

Returns:
  - []*User: Approved members, newest first
  - error: Retrieval failures
*/
func (service *Service) ListMembers(context context.Context) ([]*User, error) {
	users, err := service.repository.ListByStatus(context, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("member_service_list_members_failed: %w", err)
	}
	return users, nil
}

// # Admin Operations

/*
ListPending returns users awaiting membership review.

Parameters:
  - context: context.Context

Returns:
  - []*User: Pending users, newest first
  - error: Retrieval failures
*/
func (service *Service) ListPending(context context.Context) ([]*User, error) {
	users, err := service.repository.ListByStatus(context, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("member_service_list_pending_failed: %w", err)
	}
	return users, nil
}

/*
Approve grants full membership to a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or persistence failures
*/
func (service *Service) Approve(context context.Context, userID string) error {
	if err := service.repository.UpdateStatus(context, userID, StatusApproved); err != nil {
		return fmt.Errorf("member_service_approve_failed: %w", err)
	}

	service.logger.Info("user_membership_approved", slog.String("user_id", userID))
	return nil
}

/*
Reject refuses or revokes a user's membership.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or persistence failures
*/
func (service *Service) Reject(context context.Context, userID string) error {
	if err := service.repository.UpdateStatus(context, userID, StatusRejected); err != nil {
		return fmt.Errorf("member_service_reject_failed: %w", err)
	}

	service.logger.Warn("user_membership_rejected", slog.String("user_id", userID))
	return nil
}

/*
Promote grants the admin flag to a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or persistence failures
*/
func (service *Service) Promote(context context.Context, userID string) error {
	if err := service.repository.SetAdmin(context, userID, true); err != nil {
		return fmt.Errorf("member_service_promote_failed: %w", err)
	}

	service.logger.Info("user_promoted_to_admin", slog.String("user_id", userID))
	return nil
}

/*
Demote revokes the admin flag from a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or persistence failures
*/
func (service *Service) Demote(context context.Context, userID string) error {
	if err := service.repository.SetAdmin(context, userID, false); err != nil {
		return fmt.Errorf("member_service_demote_failed: %w", err)
	}

	service.logger.Warn("user_demoted_from_admin", slog.String("user_id", userID))
	return nil
}

// # Voluntary Exit

/*
ExitCommunity performs the voluntary departure flow.

Description: Audits the exit, announces it to the community feed, and demotes
the membership to rejected — all in a single transaction inside the store.
A user who already left (or was rejected) gets a complete no-op.

Parameters:
  - context: context.Context
  - userID: string
  - reason: string (optional, capped at 1000 characters)

Returns:
  - error: Validation, not found, or transactional failures
*/
func (service *Service) ExitCommunity(context context.Context, userID, reason string) error {

	// Validate the optional reason
	v := &validate.Validator{}
	if err := v.MaxLen(FieldReason, reason, 1000).Err(); err != nil {
		return err
	}

	// The announcement carries the member's display name
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("member_service_exit_lookup_failed: %w", err)
	}

	announcement := fmt.Sprintf("%s has left the community.", user.DisplayName())

	performed, err := service.repository.ExitCommunity(context, userID, reason, announcement)
	if err != nil {
		return fmt.Errorf("member_service_exit_failed: %w", err)
	}

	if !performed {
		service.logger.Info("user_exit_noop", slog.String("user_id", userID))
		return nil
	}

	service.logger.Warn("user_exited_community", slog.String("user_id", userID))
	return nil
}

// DisplayNameOf returns the human-readable name used in feed announcements
// and notifications.
func (service *Service) DisplayNameOf(context context.Context, userID string) (string, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return "", err
	}
	return user.DisplayName(), nil
}

// # Gate Integration

/*
LoadAccess returns the fresh membership flags the authorization gates act on.

Description: Implements [middleware.UserLoader]. Loaded per request so revoked
approvals and admin grants take effect immediately.

Parameters:
  - context: context.Context
  - subjectID: string

Returns:
  - *middleware.AccessRecord: Current approval and admin flags
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) LoadAccess(context context.Context, subjectID string) (*middleware.AccessRecord, error) {
	user, err := service.repository.FindByID(context, subjectID)
	if err != nil {
		return nil, err
	}

	return &middleware.AccessRecord{
		Approved: user.Status == StatusApproved,
		Admin:    user.IsAdmin,
	}, nil
}
