// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package event

import "context"

// Repository defines the persistence contract for events, the featured
// carousel, and RSVPs.
type Repository interface {
	// CreateEvent persists a new event.
	CreateEvent(context context.Context, event *Event) error

	// UpdateEvent persists the mutable fields of an existing event.
	// Returns apperr.NotFound for an unknown ID.
	UpdateEvent(context context.Context, event *Event) error

	// DeleteEvent removes an event with its RSVPs and carousel slots.
	DeleteEvent(context context.Context, eventID string) error

	// FindEvent returns one event hydrated with organizer, head-count, and
	// donation total.
	FindEvent(context context.Context, eventID string) (*Event, error)

	// ListEvents returns all events soonest-first, hydrated like FindEvent.
	ListEvents(context context.Context) ([]*Event, error)

	// UpsertRSVP records or replaces a member's attendance answer.
	UpsertRSVP(context context.Context, rsvp *RSVP) error

	// FindRSVP returns a member's answer for an event, apperr.NotFound when
	// the member has not answered.
	FindRSVP(context context.Context, eventID, userID string) (*RSVP, error)

	// ListAttendees returns the answered members of an event with names.
	ListAttendees(context context.Context, eventID string) ([]*Attendee, error)

	// AddFeatured creates a carousel slot for an event.
	AddFeatured(context context.Context, featured *FeaturedEvent) error

	// RemoveFeatured deletes a carousel slot by its own ID.
	RemoveFeatured(context context.Context, featuredID string) error

	// ListFeatured returns active carousel slots in display order, each
	// hydrated with its event.
	ListFeatured(context context.Context) ([]*FeaturedEvent, error)
}
