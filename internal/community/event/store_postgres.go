// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package event

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumhub/alumhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed event store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// eventColumns is the hydrated select list shared by FindEvent and ListEvents.
// $1 is reserved for the WHERE clause; the subqueries are self-contained.
const eventColumns = `
	e.id, e.organizer_id, e.title, e.description, e.venue,
	e.event_date, e.event_time, e.speakers, e.donation_goal, e.image_url,
	COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.email) AS organizer_name,
	(SELECT COUNT(*) FROM rsvps r WHERE r.event_id = e.id AND r.status = 'attending') AS attendee_count,
	COALESCE((
		SELECT SUM(d.amount) FROM donations d
		WHERE d.event_id = e.id AND d.status = 'confirmed'
	), 0) AS donation_total,
	e.created_at, e.updated_at
`

func (repository *PostgresRepository) CreateEvent(context context.Context, event *Event) error {
	const query = `
		INSERT INTO events (
			id, organizer_id, title, description, venue,
			event_date, event_time, speakers, donation_goal, image_url,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := repository.db.QueryRow(context, query,
		event.ID, event.OrganizerID, event.Title, event.Description, event.Venue,
		event.EventDate, event.EventTime, event.Speakers, event.DonationGoal, event.ImageURL,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	return dberr.Wrap(err, "insert_event")
}

func (repository *PostgresRepository) UpdateEvent(context context.Context, event *Event) error {
	const query = `
		UPDATE events SET
			title = $2, description = $3, venue = $4, event_date = $5,
			event_time = $6, speakers = $7, donation_goal = $8, image_url = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := repository.db.QueryRow(context, query,
		event.ID, event.Title, event.Description, event.Venue, event.EventDate,
		event.EventTime, event.Speakers, event.DonationGoal, event.ImageURL,
	).Scan(&event.UpdatedAt)
	return dberr.Wrap(err, "update_event")
}

// DeleteEvent relies on ON DELETE CASCADE for rsvps and featured_events.
func (repository *PostgresRepository) DeleteEvent(context context.Context, eventID string) error {
	const query = `DELETE FROM events WHERE id = $1 RETURNING id`

	var deletedID string
	err := repository.db.QueryRow(context, query, eventID).Scan(&deletedID)
	return dberr.Wrap(err, "delete_event")
}

func (repository *PostgresRepository) FindEvent(context context.Context, eventID string) (*Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`
	event, err := scanEvent(repository.db.QueryRow(context, query, eventID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_event")
	}
	return event, nil
}

func (repository *PostgresRepository) ListEvents(context context.Context) ([]*Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		ORDER BY e.event_date ASC, e.created_at DESC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_event")
		}
		events = append(events, event)
	}

	return events, nil
}

// # RSVPs

// UpsertRSVP replaces a member's previous answer in place.
func (repository *PostgresRepository) UpsertRSVP(context context.Context, rsvp *RSVP) error {
	const query = `
		INSERT INTO rsvps (id, event_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := repository.db.QueryRow(context, query,
		rsvp.ID, rsvp.EventID, rsvp.UserID, rsvp.Status,
	).Scan(&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	return dberr.Wrap(err, "upsert_rsvp")
}

func (repository *PostgresRepository) FindRSVP(context context.Context, eventID, userID string) (*RSVP, error) {
	const query = `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1 AND user_id = $2
	`
	rsvp := &RSVP{}
	err := repository.db.QueryRow(context, query, eventID, userID).Scan(
		&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_rsvp")
	}
	return rsvp, nil
}

func (repository *PostgresRepository) ListAttendees(context context.Context, eventID string) ([]*Attendee, error) {
	const query = `
		SELECT
			r.user_id,
			COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.email) AS name,
			r.status
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`
	rows, err := repository.db.Query(context, query, eventID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_attendees")
	}
	defer rows.Close()

	var attendees []*Attendee
	for rows.Next() {
		attendee := &Attendee{}
		if err := rows.Scan(&attendee.UserID, &attendee.Name, &attendee.Status); err != nil {
			return nil, dberr.Wrap(err, "scan_attendee")
		}
		attendees = append(attendees, attendee)
	}

	return attendees, nil
}

// # Featured Carousel

func (repository *PostgresRepository) AddFeatured(context context.Context, featured *FeaturedEvent) error {
	const query = `
		INSERT INTO featured_events (id, event_id, display_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := repository.db.QueryRow(context, query,
		featured.ID, featured.EventID, featured.DisplayOrder, featured.IsActive,
	).Scan(&featured.CreatedAt)
	return dberr.Wrap(err, "insert_featured_event")
}

func (repository *PostgresRepository) RemoveFeatured(context context.Context, featuredID string) error {
	const query = `DELETE FROM featured_events WHERE id = $1 RETURNING id`

	var deletedID string
	err := repository.db.QueryRow(context, query, featuredID).Scan(&deletedID)
	return dberr.Wrap(err, "delete_featured_event")
}

func (repository *PostgresRepository) ListFeatured(context context.Context) ([]*FeaturedEvent, error) {
	query := `
		SELECT
			f.id, f.event_id, f.display_order, f.is_active, f.created_at,
			` + eventColumns + `
		FROM featured_events f
		JOIN events e ON e.id = f.event_id
		JOIN users u ON u.id = e.organizer_id
		WHERE f.is_active
		ORDER BY f.display_order ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_featured_events")
	}
	defer rows.Close()

	var featured []*FeaturedEvent
	for rows.Next() {
		slot := &FeaturedEvent{Event: &Event{}}
		event := slot.Event
		err := rows.Scan(
			&slot.ID, &slot.EventID, &slot.DisplayOrder, &slot.IsActive, &slot.CreatedAt,
			&event.ID, &event.OrganizerID, &event.Title, &event.Description, &event.Venue,
			&event.EventDate, &event.EventTime, &event.Speakers, &event.DonationGoal, &event.ImageURL,
			&event.OrganizerName, &event.AttendeeCount, &event.DonationTotal,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_featured_event")
		}
		featured = append(featured, slot)
	}

	return featured, nil
}

// scanRow abstracts pgx.Row and pgx.Rows for scanEvent.
type scanRow interface {
	Scan(dest ...any) error
}

// scanEvent hydrates an Event from the canonical column list.
func scanEvent(row scanRow) (*Event, error) {
	event := &Event{}
	err := row.Scan(
		&event.ID, &event.OrganizerID, &event.Title, &event.Description, &event.Venue,
		&event.EventDate, &event.EventTime, &event.Speakers, &event.DonationGoal, &event.ImageURL,
		&event.OrganizerName, &event.AttendeeCount, &event.DonationTotal,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}
