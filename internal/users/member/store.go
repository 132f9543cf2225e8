// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package member

import (
	"context"
)

// # User Data Access

// Repository defines the data access contract for membership records.
type Repository interface {

	/*
		UpsertFromLogin inserts a new pending user or refreshes display fields.

		Description: On conflict only email, names, and avatar change — status
		and the admin flag are never touched by a login.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, Email, FirstName, LastName, ProfileImageURL set)

		Returns:
		  - *User: The stored row after the upsert
		  - error: Persistence failures
	*/
	UpsertFromLogin(context context.Context, user *User) (*User, error)

	/*
		FindByID returns the user with the given subject ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		ListByStatus returns all users in the given lifecycle state, newest first.

		Parameters:
		  - context: context.Context
		  - status: Status

		Returns:
		  - []*User: Matching users
		  - error: Retrieval failures
	*/
	ListByStatus(context context.Context, status Status) ([]*User, error)

	/*
		UpdateStatus moves a user to a new lifecycle state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateStatus(context context.Context, id string, status Status) error

	/*
		SetAdmin grants or revokes the admin flag.

		Parameters:
		  - context: context.Context
		  - id: string
		  - isAdmin: bool

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	SetAdmin(context context.Context, id string, isAdmin bool) error

	/*
		UpdateProfile persists the mutable profile fields of a user.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error

	/*
		ExitCommunity atomically records a voluntary departure.

		Description: Inside one transaction: insert the exit audit row, insert
		the departure announcement post, and move the user to rejected LAST so
		a partial failure can never leave a demoted user without an audit trail.
		A user already in rejected status is a complete no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - reason: string (may be empty)
		  - announcement: string (post body for the community feed)

		Returns:
		  - bool: true when the exit was performed, false for the no-op
		  - error: apperr.NotFound or transactional failures
	*/
	ExitCommunity(context context.Context, userID, reason, announcement string) (bool, error)
}
