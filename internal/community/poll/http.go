// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package poll

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
)

// Handler implements the HTTP layer for polls and voting.
type Handler struct {
	service *Service
}

// NewHandler constructs a new poll [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MemberRoutes returns the approved-member poll routes.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPolls)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getPoll)
		subRouter.Post("/vote", handler.vote)
		subRouter.Get("/vote", handler.getOwnVote)
	})

	return router
}

// AdminRoutes returns the admin-only poll routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createPoll)

	return router
}

// # Member Endpoints

/*
GET /api/polls.

Response:
  - 200: []Poll: All polls with options and tallies, newest first
*/
func (handler *Handler) listPolls(writer http.ResponseWriter, request *http.Request) {
	polls, err := handler.service.ListPolls(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, polls)
}

/*
GET /api/polls/{id}.

Response:
  - 200: Poll: One poll with options and tallies
  - 404: NOT_FOUND: Unknown poll
*/
func (handler *Handler) getPoll(writer http.ResponseWriter, request *http.Request) {
	poll, err := handler.service.GetPoll(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, poll)
}

// voteRequest is the JSON body for POST /api/polls/{id}/vote.
type voteRequest struct {
	OptionID string `json:"option_id"`
}

/*
POST /api/polls/{id}/vote.

Description: Records the caller's answer; voting again replaces the previous
answer and rebalances the tallies.

Response:
  - 200: Vote: The caller's current vote
  - 400: VALIDATION_ERROR: Closed poll or foreign option
*/
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body voteRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	vote, err := handler.service.Vote(request.Context(), requestutil.Param(request, "id"), body.OptionID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vote)
}

/*
GET /api/polls/{id}/vote.

Response:
  - 200: Vote: The caller's current answer
  - 404: NOT_FOUND: The caller has not voted
*/
func (handler *Handler) getOwnVote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	vote, err := handler.service.GetOwnVote(request.Context(), requestutil.Param(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vote)
}

// # Admin Endpoints

// createPollRequest is the JSON body for POST /api/admin/polls.
type createPollRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Options     []string   `json:"options"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

/*
POST /api/admin/polls.

Response:
  - 201: Poll: The published poll
  - 400: VALIDATION_ERROR: Missing title or fewer than two options
*/
func (handler *Handler) createPoll(writer http.ResponseWriter, request *http.Request) {
	creatorID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createPollRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	poll, err := handler.service.CreatePoll(request.Context(), creatorID, CreatePollInput{
		Title:       body.Title,
		Description: body.Description,
		Options:     body.Options,
		ExpiresAt:   body.ExpiresAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, poll)
}
