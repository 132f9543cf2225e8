// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumhub/alumhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed stats store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Snapshot computes all four dashboard numbers in a single round trip.
func (repository *PostgresRepository) Snapshot(context context.Context) (*Snapshot, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM users WHERE status = 'approved') AS approved_members,
			(SELECT COUNT(*) FROM users WHERE status = 'pending') AS pending_members,
			COALESCE((SELECT SUM(amount) FROM donations WHERE status = 'confirmed'), 0) AS total_donations,
			(SELECT COUNT(*) FROM events
				WHERE date_trunc('year', event_date) = date_trunc('year', NOW())) AS events_this_year
	`

	snapshot := &Snapshot{}
	err := repository.db.QueryRow(context, query).Scan(
		&snapshot.ApprovedMembers, &snapshot.PendingMembers,
		&snapshot.TotalDonations, &snapshot.EventsThisYear,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_snapshot")
	}
	return snapshot, nil
}
