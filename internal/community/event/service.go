// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for events, RSVPs, and the carousel.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new event [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// EventInput carries the admin-editable fields of an event.
type EventInput struct {
	Title        string
	Description  string
	Venue        string
	EventDate    time.Time
	EventTime    string
	Speakers     *string
	DonationGoal *float64
	ImageURL     *string
}

// validateEventInput is shared by create and update.
func validateEventInput(input EventInput) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	v.MaxLen(FieldDescription, input.Description, 5000)
	v.MaxLen(FieldVenue, input.Venue, 300)
	v.Custom(FieldEventDate, input.EventDate.IsZero(), "This field is required")
	if input.DonationGoal != nil {
		v.Positive(FieldDonationGoal, *input.DonationGoal)
	}
	return v.Err()
}

/*
CreateEvent publishes a new community event.

Parameters:
  - context: context.Context
  - organizerID: The creating admin's subject ID
  - input: EventInput

Returns:
  - *Event: The persisted event
  - error: Validation or persistence failures
*/
func (service *Service) CreateEvent(context context.Context, organizerID string, input EventInput) (*Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := &Event{
		ID:           uuidv7.New(),
		OrganizerID:  organizerID,
		Title:        input.Title,
		Description:  input.Description,
		Venue:        input.Venue,
		EventDate:    input.EventDate,
		EventTime:    input.EventTime,
		Speakers:     input.Speakers,
		DonationGoal: input.DonationGoal,
		ImageURL:     input.ImageURL,
	}
	if err := service.repository.CreateEvent(context, event); err != nil {
		return nil, fmt.Errorf("event_service_create_failed: %w", err)
	}

	service.logger.Info("event_created",
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
	)
	return event, nil
}

/*
UpdateEvent replaces the editable fields of an existing event.

Parameters:
  - context: context.Context
  - eventID: string
  - input: EventInput

Returns:
  - *Event: The updated event
  - error: Validation, not found, or persistence failures
*/
func (service *Service) UpdateEvent(context context.Context, eventID string, input EventInput) (*Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := service.repository.FindEvent(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("event_service_update_lookup_failed: %w", err)
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Venue = input.Venue
	event.EventDate = input.EventDate
	event.EventTime = input.EventTime
	event.Speakers = input.Speakers
	event.DonationGoal = input.DonationGoal
	event.ImageURL = input.ImageURL

	if err := service.repository.UpdateEvent(context, event); err != nil {
		return nil, fmt.Errorf("event_service_update_failed: %w", err)
	}

	service.logger.Info("event_updated", slog.String("event_id", eventID))
	return event, nil
}

// DeleteEvent removes an event and its dependent rows.
func (service *Service) DeleteEvent(context context.Context, eventID string) error {
	if err := service.repository.DeleteEvent(context, eventID); err != nil {
		return fmt.Errorf("event_service_delete_failed: %w", err)
	}

	service.logger.Info("event_deleted", slog.String("event_id", eventID))
	return nil
}

// GetEvent returns one hydrated event.
func (service *Service) GetEvent(context context.Context, eventID string) (*Event, error) {
	event, err := service.repository.FindEvent(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("event_service_get_failed: %w", err)
	}
	return event, nil
}

// ListEvents returns all events soonest-first.
func (service *Service) ListEvents(context context.Context) ([]*Event, error) {
	events, err := service.repository.ListEvents(context)
	if err != nil {
		return nil, fmt.Errorf("event_service_list_failed: %w", err)
	}
	return events, nil
}

// EventTitle returns just the title; used by the pledge notification flow.
func (service *Service) EventTitle(context context.Context, eventID string) (string, error) {
	event, err := service.repository.FindEvent(context, eventID)
	if err != nil {
		return "", err
	}
	return event.Title, nil
}

// # RSVPs

/*
SubmitRSVP records or replaces the member's attendance answer.

Parameters:
  - context: context.Context
  - eventID: string
  - userID: string
  - status: attending, not_attending, or maybe

Returns:
  - *RSVP: The stored answer
  - error: Validation, unknown-event, or persistence failures
*/
func (service *Service) SubmitRSVP(context context.Context, eventID, userID string, status RSVPStatus) (*RSVP, error) {
	v := &validate.Validator{}
	if err := v.OneOf(FieldStatus, string(status), RSVPStatuses...).Err(); err != nil {
		return nil, err
	}

	rsvp := &RSVP{
		ID:      uuidv7.New(),
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	if err := service.repository.UpsertRSVP(context, rsvp); err != nil {
		return nil, fmt.Errorf("event_service_rsvp_failed: %w", err)
	}
	return rsvp, nil
}

// GetOwnRSVP returns the member's answer for an event.
func (service *Service) GetOwnRSVP(context context.Context, eventID, userID string) (*RSVP, error) {
	rsvp, err := service.repository.FindRSVP(context, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("event_service_get_rsvp_failed: %w", err)
	}
	return rsvp, nil
}

// ListAttendees returns the answered members of an event.
func (service *Service) ListAttendees(context context.Context, eventID string) ([]*Attendee, error) {
	attendees, err := service.repository.ListAttendees(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("event_service_list_attendees_failed: %w", err)
	}
	return attendees, nil
}

// # Featured Carousel

/*
FeatureEvent adds an event to the carousel.

Parameters:
  - context: context.Context
  - eventID: string
  - displayOrder: Carousel position, lowest first

Returns:
  - *FeaturedEvent: The created slot
  - error: Unknown-event or persistence failures
*/
func (service *Service) FeatureEvent(context context.Context, eventID string, displayOrder int) (*FeaturedEvent, error) {
	featured := &FeaturedEvent{
		ID:           uuidv7.New(),
		EventID:      eventID,
		DisplayOrder: displayOrder,
		IsActive:     true,
	}
	if err := service.repository.AddFeatured(context, featured); err != nil {
		return nil, fmt.Errorf("event_service_feature_failed: %w", err)
	}

	service.logger.Info("event_featured", slog.String("event_id", eventID))
	return featured, nil
}

// UnfeatureEvent removes a carousel slot.
func (service *Service) UnfeatureEvent(context context.Context, featuredID string) error {
	if err := service.repository.RemoveFeatured(context, featuredID); err != nil {
		return fmt.Errorf("event_service_unfeature_failed: %w", err)
	}
	return nil
}

// ListFeatured returns the active carousel, in display order.
func (service *Service) ListFeatured(context context.Context) ([]*FeaturedEvent, error) {
	featured, err := service.repository.ListFeatured(context)
	if err != nil {
		return nil, fmt.Errorf("event_service_list_featured_failed: %w", err)
	}
	return featured, nil
}
