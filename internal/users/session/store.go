// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package session

import (
	"context"

	"github.com/alumhub/alumhub/internal/users/identity"
)

// # Session Data Access

// Repository defines the data access contract for login sessions.
type Repository interface {

	/*
		Create persists a new session with a TTL derived from its ExpiresAt.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		Find returns the live session with the given ID.

		Description: Returns apperr.NotFound for unknown or expired sessions.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound or connectivity errors
	*/
	Find(context context.Context, sessionID string) (*Session, error)

	/*
		UpdatePrincipal rewrites the stored principal without touching the TTL.

		Description: Used after a transparent token refresh. The session's
		absolute deadline must survive the rewrite.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - principal: *identity.Principal

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePrincipal(context context.Context, sessionID string, principal *identity.Principal) error

	/*
		Delete removes the session. Deleting an absent session is not an error.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, sessionID string) error
}
