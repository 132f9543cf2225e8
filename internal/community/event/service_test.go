// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package event

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/pkg/pointer"
)

// memoryRepository is an in-memory Repository mirroring the store semantics.
type memoryRepository struct {
	events   map[string]*Event
	rsvps    map[string]*RSVP // key: eventID + "/" + userID
	featured map[string]*FeaturedEvent
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		events:   make(map[string]*Event),
		rsvps:    make(map[string]*RSVP),
		featured: make(map[string]*FeaturedEvent),
	}
}

func (repository *memoryRepository) CreateEvent(_ context.Context, event *Event) error {
	clone := *event
	repository.events[event.ID] = &clone
	return nil
}

func (repository *memoryRepository) UpdateEvent(_ context.Context, event *Event) error {
	if _, found := repository.events[event.ID]; !found {
		return apperr.NotFound("Event")
	}
	clone := *event
	repository.events[event.ID] = &clone
	return nil
}

func (repository *memoryRepository) DeleteEvent(_ context.Context, eventID string) error {
	if _, found := repository.events[eventID]; !found {
		return apperr.NotFound("Event")
	}
	delete(repository.events, eventID)
	return nil
}

func (repository *memoryRepository) FindEvent(_ context.Context, eventID string) (*Event, error) {
	event, found := repository.events[eventID]
	if !found {
		return nil, apperr.NotFound("Event")
	}
	clone := *event
	for _, rsvp := range repository.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == RSVPAttending {
			clone.AttendeeCount++
		}
	}
	return &clone, nil
}

func (repository *memoryRepository) ListEvents(ctx context.Context) ([]*Event, error) {
	var events []*Event
	for id := range repository.events {
		event, _ := repository.FindEvent(ctx, id)
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	return events, nil
}

func (repository *memoryRepository) UpsertRSVP(_ context.Context, rsvp *RSVP) error {
	if _, found := repository.events[rsvp.EventID]; !found {
		return apperr.ValidationError("Referenced resource does not exist")
	}
	key := rsvp.EventID + "/" + rsvp.UserID
	if existing, found := repository.rsvps[key]; found {
		existing.Status = rsvp.Status
		*rsvp = *existing
		return nil
	}
	clone := *rsvp
	repository.rsvps[key] = &clone
	return nil
}

func (repository *memoryRepository) FindRSVP(_ context.Context, eventID, userID string) (*RSVP, error) {
	rsvp, found := repository.rsvps[eventID+"/"+userID]
	if !found {
		return nil, apperr.NotFound("RSVP")
	}
	clone := *rsvp
	return &clone, nil
}

func (repository *memoryRepository) ListAttendees(_ context.Context, eventID string) ([]*Attendee, error) {
	var attendees []*Attendee
	for _, rsvp := range repository.rsvps {
		if rsvp.EventID == eventID {
			attendees = append(attendees, &Attendee{UserID: rsvp.UserID, Status: rsvp.Status})
		}
	}
	return attendees, nil
}

func (repository *memoryRepository) AddFeatured(_ context.Context, featured *FeaturedEvent) error {
	if _, found := repository.events[featured.EventID]; !found {
		return apperr.ValidationError("Referenced resource does not exist")
	}
	clone := *featured
	repository.featured[featured.ID] = &clone
	return nil
}

func (repository *memoryRepository) RemoveFeatured(_ context.Context, featuredID string) error {
	if _, found := repository.featured[featuredID]; !found {
		return apperr.NotFound("Featured event")
	}
	delete(repository.featured, featuredID)
	return nil
}

func (repository *memoryRepository) ListFeatured(ctx context.Context) ([]*FeaturedEvent, error) {
	var featured []*FeaturedEvent
	for _, slot := range repository.featured {
		if !slot.IsActive {
			continue
		}
		clone := *slot
		clone.Event, _ = repository.FindEvent(ctx, slot.EventID)
		featured = append(featured, &clone)
	}
	sort.Slice(featured, func(i, j int) bool { return featured[i].DisplayOrder < featured[j].DisplayOrder })
	return featured, nil
}

func newTestService() (*Service, *memoryRepository) {
	repository := newMemoryRepository()
	return NewService(repository, slog.New(slog.DiscardHandler)), repository
}

func reunionInput() EventInput {
	return EventInput{
		Title:        "Class of 2012 Reunion",
		Description:  "Ten years on.",
		Venue:        "Great Hall",
		EventDate:    time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		EventTime:    "18:00",
		DonationGoal: pointer.To(5000.0),
	}
}

/*
TestService_CreateEvent verifies creation and input validation.
*/
func TestService_CreateEvent(t *testing.T) {
	service, _ := newTestService()

	event, err := service.CreateEvent(context.Background(), "admin-1", reunionInput())
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "admin-1", event.OrganizerID)

	testCases := []struct {
		name   string
		mutate func(*EventInput)
	}{
		{name: "missing_title", mutate: func(input *EventInput) { input.Title = "" }},
		{name: "missing_date", mutate: func(input *EventInput) { input.EventDate = time.Time{} }},
		{name: "negative_goal", mutate: func(input *EventInput) { input.DonationGoal = pointer.To(-5.0) }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			input := reunionInput()
			testCase.mutate(&input)

			_, err := service.CreateEvent(context.Background(), "admin-1", input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_UpdateEvent verifies field replacement and the not-found path.
*/
func TestService_UpdateEvent(t *testing.T) {
	service, _ := newTestService()

	event, err := service.CreateEvent(context.Background(), "admin-1", reunionInput())
	require.NoError(t, err)

	input := reunionInput()
	input.Venue = "Riverside Pavilion"

	updated, err := service.UpdateEvent(context.Background(), event.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Riverside Pavilion", updated.Venue)

	_, err = service.UpdateEvent(context.Background(), "missing", input)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_RSVPLifecycle verifies the upsert semantics: a second answer
replaces the first, and the head-count tracks attending answers only.
*/
func TestService_RSVPLifecycle(t *testing.T) {
	service, _ := newTestService()

	event, err := service.CreateEvent(context.Background(), "admin-1", reunionInput())
	require.NoError(t, err)

	_, err = service.SubmitRSVP(context.Background(), event.ID, "member-1", RSVPAttending)
	require.NoError(t, err)

	hydrated, err := service.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, hydrated.AttendeeCount)

	// Changing the answer replaces it rather than adding a second row.
	_, err = service.SubmitRSVP(context.Background(), event.ID, "member-1", RSVPMaybe)
	require.NoError(t, err)

	own, err := service.GetOwnRSVP(context.Background(), event.ID, "member-1")
	require.NoError(t, err)
	assert.Equal(t, RSVPMaybe, own.Status)

	hydrated, err = service.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, hydrated.AttendeeCount)

	attendees, err := service.ListAttendees(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)

	_, err = service.SubmitRSVP(context.Background(), event.ID, "member-1", RSVPStatus("absolutely"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_FeaturedCarousel verifies carousel ordering and removal.
*/
func TestService_FeaturedCarousel(t *testing.T) {
	service, _ := newTestService()

	first, err := service.CreateEvent(context.Background(), "admin-1", reunionInput())
	require.NoError(t, err)

	secondInput := reunionInput()
	secondInput.Title = "Homecoming Gala"
	second, err := service.CreateEvent(context.Background(), "admin-1", secondInput)
	require.NoError(t, err)

	slotB, err := service.FeatureEvent(context.Background(), second.ID, 2)
	require.NoError(t, err)
	_, err = service.FeatureEvent(context.Background(), first.ID, 1)
	require.NoError(t, err)

	featured, err := service.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, first.ID, featured[0].EventID)
	require.NotNil(t, featured[1].Event)
	assert.Equal(t, "Homecoming Gala", featured[1].Event.Title)

	require.NoError(t, service.UnfeatureEvent(context.Background(), slotB.ID))

	featured, err = service.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 1)
}
