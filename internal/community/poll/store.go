// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package poll

import "context"

// Repository defines the persistence contract for polls and votes.
type Repository interface {
	// CreatePoll persists a poll and its options atomically.
	CreatePoll(context context.Context, poll *Poll) error

	// FindPoll returns one poll hydrated with options and counts.
	FindPoll(context context.Context, pollID string) (*Poll, error)

	// ListPolls returns all polls newest-first, hydrated like FindPoll.
	ListPolls(context context.Context) ([]*Poll, error)

	// SaveVote records or replaces the member's vote, keeping the per-option
	// tallies consistent in the same transaction.
	SaveVote(context context.Context, vote *Vote) error

	// FindVote returns the member's current vote, apperr.NotFound when the
	// member has not voted.
	FindVote(context context.Context, pollID, userID string) (*Vote, error)
}
