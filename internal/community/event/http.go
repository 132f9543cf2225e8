// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package event

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
	"github.com/alumhub/alumhub/internal/platform/validate"
)

// Handler implements the HTTP layer for events, RSVPs, and the carousel.
type Handler struct {
	service *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MemberRoutes returns the approved-member event routes.
func (handler *Handler) MemberRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEvents)
	router.Get("/featured", handler.listFeatured)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getEvent)
		subRouter.Post("/rsvp", handler.submitRSVP)
		subRouter.Get("/rsvp", handler.getOwnRSVP)
		subRouter.Get("/attendees", handler.listAttendees)
	})

	return router
}

// AdminRoutes returns the admin-only event routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createEvent)
	router.Put("/{id}", handler.updateEvent)
	router.Delete("/{id}", handler.deleteEvent)
	router.Post("/featured", handler.featureEvent)
	router.Delete("/featured/{id}", handler.unfeatureEvent)

	return router
}

// # Member Endpoints

/*
GET /api/events.

Response:
  - 200: []Event: All events, soonest first, with head-counts and totals
*/
func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	events, err := handler.service.ListEvents(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}

/*
GET /api/events/{id}.

Response:
  - 200: Event: One hydrated event
  - 404: NOT_FOUND: Unknown event
*/
func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	event, err := handler.service.GetEvent(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

/*
GET /api/events/featured.

Response:
  - 200: []FeaturedEvent: Active carousel slots in display order
*/
func (handler *Handler) listFeatured(writer http.ResponseWriter, request *http.Request) {
	featured, err := handler.service.ListFeatured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, featured)
}

// rsvpRequest is the JSON body for POST /api/events/{id}/rsvp.
type rsvpRequest struct {
	Status string `json:"status"`
}

/*
POST /api/events/{id}/rsvp.

Description: Records the caller's attendance answer; answering again replaces
the previous answer.

Response:
  - 200: RSVP: The stored answer
  - 400: VALIDATION_ERROR: Unknown status
*/
func (handler *Handler) submitRSVP(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body rsvpRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rsvp, err := handler.service.SubmitRSVP(request.Context(), requestutil.Param(request, "id"), userID, RSVPStatus(body.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rsvp)
}

/*
GET /api/events/{id}/rsvp.

Response:
  - 200: RSVP: The caller's answer
  - 404: NOT_FOUND: The caller has not answered
*/
func (handler *Handler) getOwnRSVP(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rsvp, err := handler.service.GetOwnRSVP(request.Context(), requestutil.Param(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rsvp)
}

/*
GET /api/events/{id}/attendees.

Response:
  - 200: []Attendee: Answered members with display names
*/
func (handler *Handler) listAttendees(writer http.ResponseWriter, request *http.Request) {
	attendees, err := handler.service.ListAttendees(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attendees)
}

// # Admin Endpoints

// eventRequest is the JSON body for event create and update.
type eventRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Venue        string   `json:"venue"`
	EventDate    string   `json:"event_date"` // YYYY-MM-DD
	EventTime    string   `json:"event_time"`
	Speakers     *string  `json:"speakers"`
	DonationGoal *float64 `json:"donation_goal"`
	ImageURL     *string  `json:"image_url"`
}

// toInput parses the wire shape into an EventInput.
func (body eventRequest) toInput() (EventInput, error) {
	input := EventInput{
		Title:        body.Title,
		Description:  body.Description,
		Venue:        body.Venue,
		EventTime:    body.EventTime,
		Speakers:     body.Speakers,
		DonationGoal: body.DonationGoal,
		ImageURL:     body.ImageURL,
	}

	if body.EventDate != "" {
		date, err := time.Parse("2006-01-02", body.EventDate)
		if err != nil {
			return input, validate.RequiredError(FieldEventDate, "Must be a YYYY-MM-DD date")
		}
		input.EventDate = date
	}

	return input, nil
}

/*
POST /api/admin/events.

Response:
  - 201: Event: The created event
  - 400: VALIDATION_ERROR: Missing title or date
*/
func (handler *Handler) createEvent(writer http.ResponseWriter, request *http.Request) {
	organizerID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body eventRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := body.toInput()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.CreateEvent(request.Context(), organizerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, event)
}

/*
PUT /api/admin/events/{id}.

Response:
  - 200: Event: The updated event
  - 404: NOT_FOUND: Unknown event
*/
func (handler *Handler) updateEvent(writer http.ResponseWriter, request *http.Request) {
	var body eventRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := body.toInput()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.UpdateEvent(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

/*
DELETE /api/admin/events/{id}.

Response:
  - 204: Event removed with its RSVPs and carousel slots
  - 404: NOT_FOUND: Unknown event
*/
func (handler *Handler) deleteEvent(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteEvent(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// featureRequest is the JSON body for POST /api/admin/events/featured.
type featureRequest struct {
	EventID      string `json:"event_id"`
	DisplayOrder int    `json:"display_order"`
}

/*
POST /api/admin/events/featured.

Response:
  - 201: FeaturedEvent: The created carousel slot
  - 400: VALIDATION_ERROR: Unknown event reference
*/
func (handler *Handler) featureEvent(writer http.ResponseWriter, request *http.Request) {
	var body featureRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	featured, err := handler.service.FeatureEvent(request.Context(), body.EventID, body.DisplayOrder)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, featured)
}

/*
DELETE /api/admin/events/featured/{id}.

Response:
  - 204: Carousel slot removed
  - 404: NOT_FOUND: Unknown slot
*/
func (handler *Handler) unfeatureEvent(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.UnfeatureEvent(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
