// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package donation

import "context"

// Repository defines the persistence contract for donations, pledges, and
// bank accounts.
type Repository interface {
	// CreateDonation persists a new donation in pending state.
	CreateDonation(context context.Context, donation *Donation) error

	// ListDonationsByEvent returns an event's donations newest-first.
	ListDonationsByEvent(context context.Context, eventID string) ([]*Donation, error)

	// UpdateDonationStatus moves a donation through its settlement lifecycle.
	// Returns apperr.NotFound for an unknown ID.
	UpdateDonationStatus(context context.Context, donationID string, status Status) error

	// CreatePledge persists a pledge and its feed notification atomically.
	CreatePledge(context context.Context, pledge *Pledge, notification string) error

	// ListPledgesByEvent returns an event's pledges newest-first.
	ListPledgesByEvent(context context.Context, eventID string) ([]*Pledge, error)

	// CreateBankAccount persists a new receiving account.
	CreateBankAccount(context context.Context, account *BankAccount) error

	// ListBankAccounts returns accounts, optionally only active ones.
	ListBankAccounts(context context.Context, activeOnly bool) ([]*BankAccount, error)

	// UpdateBankAccount replaces the editable fields of an account.
	UpdateBankAccount(context context.Context, account *BankAccount) error

	// DeleteBankAccount removes an account record.
	DeleteBankAccount(context context.Context, accountID string) error
}
