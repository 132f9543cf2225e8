// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumhub/alumhub/internal/platform/respond"
)

// Handler implements the HTTP layer for the dashboard numbers.
type Handler struct {
	repository Repository
}

// NewHandler constructs a new stats [Handler].
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// MemberRoutes returns the approved-member stats routes.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getSnapshot)

	return router
}

/*
GET /api/stats.

Response:
  - 200: Snapshot: Current community dashboard numbers
  - 403: FORBIDDEN: Caller is not an approved member
*/
func (handler *Handler) getSnapshot(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.repository.Snapshot(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}
