// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package member HTTP layer.

# Routing Strategy

  - Self-service: Profile updates and voluntary exit (any authenticated user,
    including pending and rejected members).
  - Directory: The approved-member directory (approved gate).
  - Administrative: Membership review and admin grants (admin gate).

Gates are applied where the routers are mounted, so this file stays a pure
translation layer between REST and the [Service] domain.
*/
package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for membership operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new membership [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ProfileRoutes returns the caller's own profile routes.
// Mounted at /api/profile; open to any authenticated user.
func (handler *Handler) ProfileRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)

	return router
}

// ExitRoutes returns the voluntary departure route.
// Mounted at /api/exit-community; open to any authenticated user.
func (handler *Handler) ExitRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.exitCommunity)

	return router
}

// DirectoryRoutes returns the approved-member directory routes.
func (handler *Handler) DirectoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMembers)

	return router
}

// AdminRoutes returns the membership administration routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/pending-users", handler.listPending)
	router.Route("/users/{id}", func(subRouter chi.Router) {
		subRouter.Post("/approve", handler.approveUser)
		subRouter.Post("/reject", handler.rejectUser)
		subRouter.Post("/promote", handler.promoteUser)
		subRouter.Post("/demote", handler.demoteUser)
	})

	return router
}

// # Self-Service Endpoints

/*
GET /api/profile.

Description: Returns the caller's own alum profile.

Response:
  - 200: User: The caller's membership record
  - 401: UNAUTHORIZED: No session
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), subjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest is the JSON body for PUT /api/profile.
type updateProfileRequest struct {
	GraduationYear *int    `json:"graduation_year"`
	Major          *string `json:"major"`
	Company        *string `json:"company"`
	JobTitle       *string `json:"job_title"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
}

/*
PUT /api/profile.

Description: Applies a partial update to the caller's alum profile.

Response:
  - 200: User: The updated profile
  - 400: VALIDATION_ERROR: Malformed body or out-of-range fields
  - 401: UNAUTHORIZED: No session
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateProfileRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), subjectID, UpdateProfileInput{
		GraduationYear: body.GraduationYear,
		Major:          body.Major,
		Company:        body.Company,
		JobTitle:       body.JobTitle,
		Location:       body.Location,
		Bio:            body.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// exitCommunityRequest is the JSON body for POST /api/exit-community.
type exitCommunityRequest struct {
	Reason string `json:"reason"`
}

/*
POST /api/exit-community.

Description: Voluntarily leaves the community. Audits the departure, posts a
feed announcement, and demotes the membership — atomically. Calling it again
after leaving is a harmless no-op.

Response:
  - 204: Exit recorded (or already departed)
  - 401: UNAUTHORIZED: No session
*/
func (handler *Handler) exitCommunity(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The body is optional; an empty reason is fine
	var body exitCommunityRequest
	_ = requestutil.DecodeJSON(request, &body)

	if err := handler.service.ExitCommunity(request.Context(), subjectID, body.Reason); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Directory Endpoints

/*
GET /api/members.

Description: Lists the approved member directory.

Response:
  - 200: []User: Approved members
  - 403: FORBIDDEN: Caller is not an approved member
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	members, err := handler.service.ListMembers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, members)
}

// # Administrative Endpoints

/*
GET /api/admin/pending-users.

Description: Lists users awaiting membership review.

Response:
  - 200: []User: Pending users
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.ListPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
POST /api/admin/users/{id}/approve.

Response:
  - 204: Membership approved
  - 404: NOT_FOUND: Unknown user
*/
func (handler *Handler) approveUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Approve(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/admin/users/{id}/reject.

Response:
  - 204: Membership rejected
  - 404: NOT_FOUND: Unknown user
*/
func (handler *Handler) rejectUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Reject(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/admin/users/{id}/promote.

Response:
  - 204: Admin flag granted
  - 404: NOT_FOUND: Unknown user
*/
func (handler *Handler) promoteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Promote(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/admin/users/{id}/demote.

Response:
  - 204: Admin flag revoked
  - 404: NOT_FOUND: Unknown user
*/
func (handler *Handler) demoteUser(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Demote(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
