// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
)

// Handler implements the HTTP layer for the community feed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new feed [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MemberRoutes returns the approved-member feed routes.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listFeed)
	router.Post("/{id}/like", handler.likePost)
	router.Delete("/{id}/like", handler.unlikePost)
	router.Get("/{id}/comments", handler.listComments)
	router.Post("/{id}/comments", handler.addComment)

	return router
}

// AdminRoutes returns the admin-only feed routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createPost)
	router.Delete("/{id}", handler.deletePost)

	return router
}

// # Member Endpoints

/*
GET /api/posts.

Response:
  - 200: []Post: The feed, newest first, with the caller's like flags
  - 403: FORBIDDEN: Caller is not an approved member
*/
func (handler *Handler) listFeed(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, err := handler.service.ListFeed(request.Context(), viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, posts)
}

/*
POST /api/posts/{id}/like.

Response:
  - 204: Like recorded (idempotent)
*/
func (handler *Handler) likePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Like(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
DELETE /api/posts/{id}/like.

Response:
  - 204: Like removed (idempotent)
*/
func (handler *Handler) unlikePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unlike(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/posts/{id}/comments.

Response:
  - 200: []Comment: Replies oldest first
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListComments(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// addCommentRequest is the JSON body for POST /api/posts/{id}/comments.
type addCommentRequest struct {
	Content string `json:"content"`
}

/*
POST /api/posts/{id}/comments.

Response:
  - 201: Comment: The persisted reply
  - 400: VALIDATION_ERROR: Missing or oversized content
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body addCommentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), requestutil.Param(request, "id"), authorID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// # Admin Endpoints

// createPostRequest is the JSON body for POST /api/admin/posts.
type createPostRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

/*
POST /api/admin/posts.

Response:
  - 201: Post: The published entry
  - 400: VALIDATION_ERROR: Missing content or unknown type
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createPostRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Admin-authored posts default to announcements.
	postType := Type(body.Type)
	if body.Type == "" {
		postType = TypeAnnouncement
	}

	post, err := handler.service.CreatePost(request.Context(), authorID, body.Content, postType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
DELETE /api/admin/posts/{id}.

Response:
  - 204: Post removed
  - 404: NOT_FOUND: Unknown post
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePost(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
