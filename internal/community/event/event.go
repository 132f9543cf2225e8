// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package event implements community events: admin-managed CRUD, the featured
carousel, and member RSVPs.
*/
package event

import "time"

// # RSVP Taxonomy

// RSVPStatus is a member's attendance answer for an event.
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPNotAttending RSVPStatus = "not_attending"
	RSVPMaybe        RSVPStatus = "maybe"
)

// RSVPStatuses lists every valid attendance answer.
var RSVPStatuses = []string{string(RSVPAttending), string(RSVPNotAttending), string(RSVPMaybe)}

// # Core Entities

// Event is a community event hydrated with organizer display data, the
// attending head-count, and the confirmed donation total.
type Event struct {
	ID          string `json:"id"`
	OrganizerID string `json:"organizer_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`

	// EventDate is the calendar day; EventTime the human-entered start time.
	EventDate time.Time `json:"event_date"`
	EventTime string    `json:"event_time"`

	Speakers     *string  `json:"speakers,omitempty"`
	DonationGoal *float64 `json:"donation_goal,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`

	// Joined display data
	OrganizerName string  `json:"organizer_name"`
	AttendeeCount int     `json:"attendee_count"`
	DonationTotal float64 `json:"donation_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RSVP is a member's attendance record for one event.
type RSVP struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Attendee is one entry of an event's attendee listing.
type Attendee struct {
	UserID string     `json:"user_id"`
	Name   string     `json:"name"`
	Status RSVPStatus `json:"status"`
}

// FeaturedEvent is a carousel slot pointing at an event.
type FeaturedEvent struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Event is hydrated on carousel listings.
	Event *Event `json:"event,omitempty"`
}

// # JSON Field Identifiers

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldVenue        = "venue"
	FieldEventDate    = "event_date"
	FieldStatus       = "status"
	FieldDisplayOrder = "display_order"
	FieldDonationGoal = "donation_goal"
)
