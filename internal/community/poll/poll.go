// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package poll implements community polls: admin-created questions with a fixed
option list, one vote per member, and re-votes that replace the previous vote.
*/
package poll

import "time"

// # Core Entities

// Poll is a community question with its options and aggregate counts.
type Poll struct {
	ID          string     `json:"id"`
	CreatedByID string     `json:"created_by_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Options    []*Option `json:"options"`
	TotalVotes int       `json:"total_votes"`
}

// Option is one answer of a poll with its running tally.
type Option struct {
	ID        string `json:"id"`
	PollID    string `json:"poll_id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

// Vote is a member's (single) current answer on a poll.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Open reports whether the poll still accepts votes.
func (poll *Poll) Open(now time.Time) bool {
	if !poll.IsActive {
		return false
	}
	return poll.ExpiresAt == nil || now.Before(*poll.ExpiresAt)
}

// HasOption reports whether an option ID belongs to this poll.
func (poll *Poll) HasOption(optionID string) bool {
	for _, option := range poll.Options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}

// # JSON Field Identifiers

const (
	FieldTitle    = "title"
	FieldOptions  = "options"
	FieldOptionID = "option_id"
)
