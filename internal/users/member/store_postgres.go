// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package member

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alumhub/alumhub/internal/platform/dberr"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed membership store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// userColumns is the canonical select list scanned by scanUser.
const userColumns = `
	id, email, first_name, last_name, profile_image_url,
	status, is_admin, graduation_year, major, company,
	job_title, location, bio, created_at, updated_at
`

/*
UpsertFromLogin inserts a pending user or refreshes display fields in place.

Description: The ON CONFLICT clause deliberately excludes status and is_admin:
a rejected alum logging back in stays rejected, an admin stays admin.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *User: The stored row after the upsert
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpsertFromLogin(context context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (
			id, email, first_name, last_name, profile_image_url,
			status, is_admin, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING ` + userColumns

	row := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL,
		StatusPending,
	)

	stored, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_user_from_login")
	}
	return stored, nil
}

/*
FindByID retrieves a single user by the provider subject ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_user_by_id")
	}
	return user, nil
}

/*
ListByStatus returns all users in the given lifecycle state, newest first.

Parameters:
  - context: context.Context
  - status: Status

Returns:
  - []*User: Matching users
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByStatus(context context.Context, status Status) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`

	rows, err := repository.db.Query(context, query, status)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users_by_status")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, nil
}

/*
UpdateStatus moves a user to a new lifecycle state.

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status Status) error {
	const query = `
		UPDATE users SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`
	var updatedID string
	err := repository.db.QueryRow(context, query, id, status).Scan(&updatedID)
	return dberr.Wrap(err, "update_user_status")
}

/*
SetAdmin grants or revokes the admin flag.

Parameters:
  - context: context.Context
  - id: string
  - isAdmin: bool

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) SetAdmin(context context.Context, id string, isAdmin bool) error {
	const query = `
		UPDATE users SET is_admin = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`
	var updatedID string
	err := repository.db.QueryRow(context, query, id, isAdmin).Scan(&updatedID)
	return dberr.Wrap(err, "set_user_admin")
}

/*
UpdateProfile persists the mutable profile fields of a user.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *User) error {
	const query = `
		UPDATE users SET
			graduation_year = $2, major = $3, company = $4,
			job_title = $5, location = $6, bio = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := repository.db.QueryRow(context, query,
		user.ID, user.GraduationYear, user.Major, user.Company,
		user.JobTitle, user.Location, user.Bio,
	).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user_profile")
}

/*
ExitCommunity atomically records a voluntary departure.

Description: Executes within an ACID transaction.
1. Locks the user row and checks the current status (no-op when rejected).
2. Inserts the exit audit record.
3. Inserts the departure announcement into the community feed.
4. Moves the user to rejected LAST.
Rolls back completely if any stage fails so a demotion can never exist
without its audit trail.

Parameters:
  - context: context.Context
  - userID: string
  - reason: string
  - announcement: string

Returns:
  - bool: true when the exit was performed, false for the no-op
  - error: apperr.NotFound or transactional failures
*/
func (repository *PostgresRepository) ExitCommunity(context context.Context, userID, reason, announcement string) (bool, error) {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return false, dberr.Wrap(err, "begin_exit_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Lock the row and read the current status
	var status Status
	lockQuery := `SELECT status FROM users WHERE id = $1 FOR UPDATE`
	if err := transaction.QueryRow(context, lockQuery, userID).Scan(&status); err != nil {
		return false, dberr.Wrap(err, "lock_user_for_exit")
	}

	// Already departed or rejected: full no-op, no audit, no announcement
	if status == StatusRejected {
		return false, nil
	}

	// Step 2: Audit the departure
	auditQuery := `
		INSERT INTO community_exits (id, user_id, reason, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := transaction.Exec(context, auditQuery, uuidv7.New(), userID, reason); err != nil {
		return false, dberr.Wrap(err, "insert_exit_audit")
	}

	// Step 3: Announce to the community feed
	postQuery := `
		INSERT INTO posts (id, author_id, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, 'announcement', NOW(), NOW())
	`
	if _, err := transaction.Exec(context, postQuery, uuidv7.New(), userID, announcement); err != nil {
		return false, dberr.Wrap(err, "insert_exit_announcement")
	}

	// Step 4: Demote LAST so failures above leave the membership intact
	statusQuery := `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := transaction.Exec(context, statusQuery, userID, StatusRejected); err != nil {
		return false, dberr.Wrap(err, "demote_exiting_user")
	}

	// Persist Atomic Changeset
	if err := transaction.Commit(context); err != nil {
		return false, dberr.Wrap(err, "commit_exit_tx")
	}
	return true, nil
}

// scanRow abstracts pgx.Row and pgx.Rows for scanUser.
type scanRow interface {
	Scan(dest ...any) error
}

// scanUser hydrates a User from the canonical column list.
func scanUser(row scanRow) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ProfileImageURL,
		&user.Status, &user.IsAdmin, &user.GraduationYear, &user.Major, &user.Company,
		&user.JobTitle, &user.Location, &user.Bio, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
