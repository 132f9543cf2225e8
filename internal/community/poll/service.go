// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package poll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for polls and voting.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new poll [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// CreatePollInput carries the admin-supplied fields of a new poll.
type CreatePollInput struct {
	Title       string
	Description string
	Options     []string
	ExpiresAt   *time.Time
}

/*
CreatePoll publishes a new poll with its option list.

Parameters:
  - context: context.Context
  - creatorID: The creating admin's subject ID
  - input: CreatePollInput (title required, at least two options)

Returns:
  - *Poll: The persisted poll with zeroed tallies
  - error: Validation or persistence failures
*/
func (service *Service) CreatePoll(context context.Context, creatorID string, input CreatePollInput) (*Poll, error) {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	v.Custom(FieldOptions, len(input.Options) < 2, "A poll needs at least two options")
	for _, option := range input.Options {
		v.Required(FieldOptions, option)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	poll := &Poll{
		ID:          uuidv7.New(),
		CreatedByID: creatorID,
		Title:       input.Title,
		Description: input.Description,
		IsActive:    true,
		ExpiresAt:   input.ExpiresAt,
	}
	for _, text := range input.Options {
		poll.Options = append(poll.Options, &Option{
			ID:     uuidv7.New(),
			PollID: poll.ID,
			Text:   text,
		})
	}

	if err := service.repository.CreatePoll(context, poll); err != nil {
		return nil, fmt.Errorf("poll_service_create_failed: %w", err)
	}

	service.logger.Info("poll_created",
		slog.String("poll_id", poll.ID),
		slog.Int("options", len(poll.Options)),
	)
	return poll, nil
}

// GetPoll returns one poll with options and tallies.
func (service *Service) GetPoll(context context.Context, pollID string) (*Poll, error) {
	poll, err := service.repository.FindPoll(context, pollID)
	if err != nil {
		return nil, fmt.Errorf("poll_service_get_failed: %w", err)
	}
	return poll, nil
}

// ListPolls returns all polls newest-first.
func (service *Service) ListPolls(context context.Context) ([]*Poll, error) {
	polls, err := service.repository.ListPolls(context)
	if err != nil {
		return nil, fmt.Errorf("poll_service_list_failed: %w", err)
	}
	return polls, nil
}

// # Voting

/*
Vote records the member's answer; voting again replaces the previous answer.

Parameters:
  - context: context.Context
  - pollID: string
  - optionID: Must belong to the poll
  - userID: string

Returns:
  - *Vote: The member's current vote
  - error: Validation, closed-poll, or persistence failures
*/
func (service *Service) Vote(context context.Context, pollID, optionID, userID string) (*Vote, error) {
	poll, err := service.repository.FindPoll(context, pollID)
	if err != nil {
		return nil, fmt.Errorf("poll_service_vote_lookup_failed: %w", err)
	}

	if !poll.Open(service.now()) {
		return nil, apperr.ValidationError("This poll is closed")
	}
	if !poll.HasOption(optionID) {
		return nil, validate.RequiredError(FieldOptionID, "Option does not belong to this poll")
	}

	vote := &Vote{
		ID:       uuidv7.New(),
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	if err := service.repository.SaveVote(context, vote); err != nil {
		return nil, fmt.Errorf("poll_service_vote_failed: %w", err)
	}

	return vote, nil
}

// GetOwnVote returns the member's current answer on a poll.
func (service *Service) GetOwnVote(context context.Context, pollID, userID string) (*Vote, error) {
	vote, err := service.repository.FindVote(context, pollID, userID)
	if err != nil {
		return nil, fmt.Errorf("poll_service_get_vote_failed: %w", err)
	}
	return vote, nil
}
