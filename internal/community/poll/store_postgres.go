// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package poll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumhub/alumhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed poll store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreatePoll writes the poll row and every option in one transaction.
func (repository *PostgresRepository) CreatePoll(context context.Context, poll *Poll) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_poll_tx")
	}
	defer transaction.Rollback(context)

	const pollQuery = `
		INSERT INTO polls (id, created_by_id, title, description, is_active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err = transaction.QueryRow(context, pollQuery,
		poll.ID, poll.CreatedByID, poll.Title, poll.Description, poll.IsActive, poll.ExpiresAt,
	).Scan(&poll.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_poll")
	}

	const optionQuery = `
		INSERT INTO poll_options (id, poll_id, option_text, vote_count)
		VALUES ($1, $2, $3, 0)
	`
	for _, option := range poll.Options {
		if _, err := transaction.Exec(context, optionQuery, option.ID, poll.ID, option.Text); err != nil {
			return dberr.Wrap(err, "insert_poll_option")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_poll_tx")
	}
	return nil
}

func (repository *PostgresRepository) FindPoll(context context.Context, pollID string) (*Poll, error) {
	const query = `
		SELECT id, created_by_id, title, description, is_active, expires_at, created_at
		FROM polls
		WHERE id = $1
	`
	poll := &Poll{}
	err := repository.db.QueryRow(context, query, pollID).Scan(
		&poll.ID, &poll.CreatedByID, &poll.Title, &poll.Description,
		&poll.IsActive, &poll.ExpiresAt, &poll.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_poll")
	}

	if err := repository.attachOptions(context, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func (repository *PostgresRepository) ListPolls(context context.Context) ([]*Poll, error) {
	const query = `
		SELECT id, created_by_id, title, description, is_active, expires_at, created_at
		FROM polls
		ORDER BY created_at DESC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_polls")
	}
	defer rows.Close()

	var polls []*Poll
	for rows.Next() {
		poll := &Poll{}
		err := rows.Scan(
			&poll.ID, &poll.CreatedByID, &poll.Title, &poll.Description,
			&poll.IsActive, &poll.ExpiresAt, &poll.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_poll")
		}
		polls = append(polls, poll)
	}
	rows.Close()

	for _, poll := range polls {
		if err := repository.attachOptions(context, poll); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

// attachOptions hydrates a poll's options and the aggregate vote count.
func (repository *PostgresRepository) attachOptions(context context.Context, poll *Poll) error {
	const query = `
		SELECT id, poll_id, option_text, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY id ASC
	`
	rows, err := repository.db.Query(context, query, poll.ID)
	if err != nil {
		return dberr.Wrap(err, "list_poll_options")
	}
	defer rows.Close()

	poll.Options = nil
	poll.TotalVotes = 0
	for rows.Next() {
		option := &Option{}
		if err := rows.Scan(&option.ID, &option.PollID, &option.Text, &option.VoteCount); err != nil {
			return dberr.Wrap(err, "scan_poll_option")
		}
		poll.Options = append(poll.Options, option)
		poll.TotalVotes += option.VoteCount
	}

	return nil
}

/*
SaveVote records or replaces the member's vote.

Description: Executes within an ACID transaction.
1. Locks the member's existing vote row, if any.
2. Same option again: no-op.
3. Different option: decrements the old tally, moves the vote, increments
   the new tally.
4. First vote: inserts the row and increments the tally.
*/
func (repository *PostgresRepository) SaveVote(context context.Context, vote *Vote) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_vote_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Find and lock the existing vote
	var existingID, existingOptionID string
	const lockQuery = `
		SELECT id, option_id FROM poll_votes
		WHERE poll_id = $1 AND user_id = $2
		FOR UPDATE
	`
	err = transaction.QueryRow(context, lockQuery, vote.PollID, vote.UserID).Scan(&existingID, &existingOptionID)
	switch {
	case err == nil:
		// Step 2: Same option, nothing to do
		if existingOptionID == vote.OptionID {
			vote.ID = existingID
			return transaction.Commit(context)
		}

		// Step 3: Move the vote and rebalance both tallies
		const decrementQuery = `UPDATE poll_options SET vote_count = vote_count - 1 WHERE id = $1`
		if _, err := transaction.Exec(context, decrementQuery, existingOptionID); err != nil {
			return dberr.Wrap(err, "decrement_old_option")
		}

		const moveQuery = `UPDATE poll_votes SET option_id = $2, created_at = NOW() WHERE id = $1`
		if _, err := transaction.Exec(context, moveQuery, existingID, vote.OptionID); err != nil {
			return dberr.Wrap(err, "move_vote")
		}
		vote.ID = existingID

	case errors.Is(err, pgx.ErrNoRows):
		// Step 4: First vote on this poll
		const insertQuery = `
			INSERT INTO poll_votes (id, poll_id, option_id, user_id, created_at)
			VALUES ($1, $2, $3, $4, NOW())
		`
		if _, err := transaction.Exec(context, insertQuery, vote.ID, vote.PollID, vote.OptionID, vote.UserID); err != nil {
			return dberr.Wrap(err, "insert_vote")
		}

	default:
		return dberr.Wrap(err, "lock_existing_vote")
	}

	const incrementQuery = `UPDATE poll_options SET vote_count = vote_count + 1 WHERE id = $1`
	if _, err := transaction.Exec(context, incrementQuery, vote.OptionID); err != nil {
		return dberr.Wrap(err, "increment_new_option")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_vote_tx")
	}
	return nil
}

func (repository *PostgresRepository) FindVote(context context.Context, pollID, userID string) (*Vote, error) {
	const query = `
		SELECT id, poll_id, option_id, user_id, created_at
		FROM poll_votes
		WHERE poll_id = $1 AND user_id = $2
	`
	vote := &Vote{}
	err := repository.db.QueryRow(context, query, pollID, userID).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_vote")
	}
	return vote, nil
}
