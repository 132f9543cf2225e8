// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package stats serves the community dashboard numbers: membership counts,
confirmed donation totals, and event activity.
*/
package stats

import "context"

// Snapshot is the dashboard aggregate returned by GET /api/stats.
type Snapshot struct {
	ApprovedMembers int     `json:"approved_members"`
	PendingMembers  int     `json:"pending_members"`
	TotalDonations  float64 `json:"total_donations"`
	EventsThisYear  int     `json:"events_this_year"`
}

// Repository defines the aggregate query contract.
type Repository interface {
	// Snapshot computes the current dashboard numbers.
	Snapshot(context context.Context) (*Snapshot, error)
}
