// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/ctxutil"
	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/internal/users/identity"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Principal extracts the resolved login principal from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *identity.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *identity.Principal: The resolved login principal
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*identity.Principal, error) {

	// Get the resolved principal
	principal := ctxutil.GetPrincipal(request.Context())

	// If the request is not authenticated, return an error
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}

/*
RequiredSubjectID returns the provider-scoped subject ID of the logged-in user.

Returns:
  - string: Subject ID (primary key of the users table)
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredSubjectID(request *http.Request) (string, error) {

	// Get the resolved principal
	principal, err := RequiredPrincipal(request)

	// If the request is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return principal.SubjectID, nil
}
