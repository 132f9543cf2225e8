// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package donation

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

// NewPostgresRepository constructs a PostgreSQL backed donation store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Donations

func (repository *PostgresRepository) CreateDonation(context context.Context, donation *Donation) error {
	const query = `
		INSERT INTO donations (id, donor_id, event_id, amount, reference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := repository.db.QueryRow(context, query,
		donation.ID, donation.DonorID, donation.EventID,
		donation.Amount, donation.Reference, donation.Status,
	).Scan(&donation.CreatedAt)
	return dberr.Wrap(err, "insert_donation")
}

func (repository *PostgresRepository) ListDonationsByEvent(context context.Context, eventID string) ([]*Donation, error) {
	const query = `
		SELECT id, donor_id, event_id, amount, reference, status, created_at
		FROM donations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := repository.db.Query(context, query, eventID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_donations")
	}
	defer rows.Close()

	var donations []*Donation
	for rows.Next() {
		donation := &Donation{}
		err := rows.Scan(
			&donation.ID, &donation.DonorID, &donation.EventID,
			&donation.Amount, &donation.Reference, &donation.Status, &donation.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_donation")
		}
		donations = append(donations, donation)
	}

	return donations, nil
}

func (repository *PostgresRepository) UpdateDonationStatus(context context.Context, donationID string, status Status) error {
	const query = `UPDATE donations SET status = $2 WHERE id = $1 RETURNING id`

	var updatedID string
	err := repository.db.QueryRow(context, query, donationID, status).Scan(&updatedID)
	return dberr.Wrap(err, "update_donation_status")
}

// # Pledges

/*
CreatePledge persists the pledge and its feed notification atomically.

Description: Both rows commit or neither does — a pledge without its
notification (or the reverse) never becomes visible.
*/
func (repository *PostgresRepository) CreatePledge(context context.Context, pledge *Pledge, notification string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_pledge_tx")
	}
	defer transaction.Rollback(context)

	const pledgeQuery = `
		INSERT INTO pledges (id, pledger_id, event_id, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	err = transaction.QueryRow(context, pledgeQuery,
		pledge.ID, pledge.PledgerID, pledge.EventID, pledge.Amount, pledge.Reference,
	).Scan(&pledge.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_pledge")
	}

	const postQuery = `
		INSERT INTO posts (id, author_id, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, 'notification', NOW(), NOW())
	`
	if _, err := transaction.Exec(context, postQuery, uuidv7.New(), pledge.PledgerID, notification); err != nil {
		return dberr.Wrap(err, "insert_pledge_notification")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_pledge_tx")
	}
	return nil
}

func (repository *PostgresRepository) ListPledgesByEvent(context context.Context, eventID string) ([]*Pledge, error) {
	const query = `
		SELECT id, pledger_id, event_id, amount, reference, created_at
		FROM pledges
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := repository.db.Query(context, query, eventID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pledges")
	}
	defer rows.Close()

	var pledges []*Pledge
	for rows.Next() {
		pledge := &Pledge{}
		err := rows.Scan(
			&pledge.ID, &pledge.PledgerID, &pledge.EventID,
			&pledge.Amount, &pledge.Reference, &pledge.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_pledge")
		}
		pledges = append(pledges, pledge)
	}

	return pledges, nil
}

// # Bank Accounts

func (repository *PostgresRepository) CreateBankAccount(context context.Context, account *BankAccount) error {
	const query = `
		INSERT INTO bank_accounts (id, bank_name, account_name, account_number, branch_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := repository.db.QueryRow(context, query,
		account.ID, account.BankName, account.AccountName,
		account.AccountNumber, account.BranchCode, account.IsActive,
	).Scan(&account.CreatedAt)
	return dberr.Wrap(err, "insert_bank_account")
}

func (repository *PostgresRepository) ListBankAccounts(context context.Context, activeOnly bool) ([]*BankAccount, error) {
	const query = `
		SELECT id, bank_name, account_name, account_number, branch_code, is_active, created_at
		FROM bank_accounts
		WHERE NOT $1 OR is_active
		ORDER BY created_at DESC
	`
	rows, err := repository.db.Query(context, query, activeOnly)
	if err != nil {
		return nil, dberr.Wrap(err, "list_bank_accounts")
	}
	defer rows.Close()

	var accounts []*BankAccount
	for rows.Next() {
		account := &BankAccount{}
		err := rows.Scan(
			&account.ID, &account.BankName, &account.AccountName,
			&account.AccountNumber, &account.BranchCode, &account.IsActive, &account.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_bank_account")
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (repository *PostgresRepository) UpdateBankAccount(context context.Context, account *BankAccount) error {
	const query = `
		UPDATE bank_accounts SET
			bank_name = $2, account_name = $3, account_number = $4,
			branch_code = $5, is_active = $6
		WHERE id = $1
		RETURNING id
	`
	var updatedID string
	err := repository.db.QueryRow(context, query,
		account.ID, account.BankName, account.AccountName,
		account.AccountNumber, account.BranchCode, account.IsActive,
	).Scan(&updatedID)
	return dberr.Wrap(err, "update_bank_account")
}

func (repository *PostgresRepository) DeleteBankAccount(context context.Context, accountID string) error {
	const query = `DELETE FROM bank_accounts WHERE id = $1 RETURNING id`

	var deletedID string
	err := repository.db.QueryRow(context, query, accountID).Scan(&deletedID)
	return dberr.Wrap(err, "delete_bank_account")
}
