// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package donation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumhub/alumhub/internal/platform/validate"
	"github.com/alumhub/alumhub/pkg/uuidv7"
)

// MemberNames resolves a member's display name for notification text.
type MemberNames interface {
	DisplayNameOf(context context.Context, userID string) (string, error)
}

// EventTitles resolves an event title for notification text.
type EventTitles interface {
	EventTitle(context context.Context, eventID string) (string, error)
}

// # Service Layer

// Service orchestrates business logic for donation tracking.
type Service struct {
	repository Repository
	members    MemberNames
	events     EventTitles
	logger     *slog.Logger
}

// NewService constructs a new donation [Service].
func NewService(repository Repository, members MemberNames, events EventTitles, logger *slog.Logger) *Service {
	return &Service{repository: repository, members: members, events: events, logger: logger}
}

// # Donations

/*
CreateDonation records a member's payment, starting in pending state.

Parameters:
  - context: context.Context
  - donorID: The paying member's subject ID
  - eventID: Optional target event (nil for general donations)
  - amount: Must be strictly positive
  - reference: Bank transfer reference (capped at 100 characters)

Returns:
  - *Donation: The recorded donation
  - error: Validation or persistence failures
*/
func (service *Service) CreateDonation(context context.Context, donorID string, eventID *string, amount float64, reference string) (*Donation, error) {
	v := &validate.Validator{}
	v.Positive(FieldAmount, amount)
	v.MaxLen(FieldReference, reference, 100)
	if err := v.Err(); err != nil {
		return nil, err
	}

	donation := &Donation{
		ID:        uuidv7.New(),
		DonorID:   donorID,
		EventID:   eventID,
		Amount:    amount,
		Reference: reference,
		Status:    StatusPending,
	}
	if err := service.repository.CreateDonation(context, donation); err != nil {
		return nil, fmt.Errorf("donation_service_create_failed: %w", err)
	}

	service.logger.Info("donation_recorded",
		slog.String("donation_id", donation.ID),
		slog.Float64("amount", amount),
	)
	return donation, nil
}

// ListDonations returns an event's donations newest-first.
func (service *Service) ListDonations(context context.Context, eventID string) ([]*Donation, error) {
	donations, err := service.repository.ListDonationsByEvent(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("donation_service_list_failed: %w", err)
	}
	return donations, nil
}

/*
UpdateStatus moves a donation through its settlement lifecycle (admin only).

Parameters:
  - context: context.Context
  - donationID: string
  - status: pending, confirmed, or failed

Returns:
  - error: Validation, not found, or persistence failures
*/
func (service *Service) UpdateStatus(context context.Context, donationID string, status Status) error {
	v := &validate.Validator{}
	if err := v.OneOf(FieldStatus, string(status), Statuses...).Err(); err != nil {
		return err
	}

	if err := service.repository.UpdateDonationStatus(context, donationID, status); err != nil {
		return fmt.Errorf("donation_service_status_failed: %w", err)
	}

	service.logger.Info("donation_status_updated",
		slog.String("donation_id", donationID),
		slog.String("status", string(status)),
	)
	return nil
}

// # Pledges

/*
CreatePledge records a member's pledge toward an event and announces it.

Description: The pledge row and its feed notification are written in one
transaction. The notification carries the pledger's display name and the
event title.

Parameters:
  - context: context.Context
  - pledgerID: string
  - eventID: string
  - amount: Must be strictly positive
  - reference: Optional note (capped at 100 characters)

Returns:
  - *Pledge: The recorded pledge
  - error: Validation, unknown event, or persistence failures
*/
func (service *Service) CreatePledge(context context.Context, pledgerID, eventID string, amount float64, reference string) (*Pledge, error) {
	v := &validate.Validator{}
	v.Positive(FieldAmount, amount)
	v.MaxLen(FieldReference, reference, 100)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Resolve display data for the notification before opening the transaction.
	pledgerName, err := service.members.DisplayNameOf(context, pledgerID)
	if err != nil {
		return nil, fmt.Errorf("donation_service_pledger_lookup_failed: %w", err)
	}
	eventTitle, err := service.events.EventTitle(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("donation_service_event_lookup_failed: %w", err)
	}

	pledge := &Pledge{
		ID:        uuidv7.New(),
		PledgerID: pledgerID,
		EventID:   eventID,
		Amount:    amount,
		Reference: reference,
	}
	notification := fmt.Sprintf("%s pledged %.2f toward %s.", pledgerName, amount, eventTitle)

	if err := service.repository.CreatePledge(context, pledge, notification); err != nil {
		return nil, fmt.Errorf("donation_service_pledge_failed: %w", err)
	}

	service.logger.Info("pledge_recorded",
		slog.String("pledge_id", pledge.ID),
		slog.String("event_id", eventID),
		slog.Float64("amount", amount),
	)
	return pledge, nil
}

// ListPledges returns an event's pledges newest-first.
func (service *Service) ListPledges(context context.Context, eventID string) ([]*Pledge, error) {
	pledges, err := service.repository.ListPledgesByEvent(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("donation_service_list_pledges_failed: %w", err)
	}
	return pledges, nil
}

// # Bank Accounts

// BankAccountInput carries the admin-editable fields of a receiving account.
type BankAccountInput struct {
	BankName      string
	AccountName   string
	AccountNumber string
	BranchCode    string
	IsActive      bool
}

func validateBankAccount(input BankAccountInput) error {
	v := &validate.Validator{}
	v.Required(FieldBankName, input.BankName).MaxLen(FieldBankName, input.BankName, 100)
	v.Required(FieldAccountName, input.AccountName).MaxLen(FieldAccountName, input.AccountName, 100)
	v.Required(FieldAccountNumber, input.AccountNumber).MaxLen(FieldAccountNumber, input.AccountNumber, 34)
	return v.Err()
}

// CreateBankAccount adds a receiving account record (admin only).
func (service *Service) CreateBankAccount(context context.Context, input BankAccountInput) (*BankAccount, error) {
	if err := validateBankAccount(input); err != nil {
		return nil, err
	}

	account := &BankAccount{
		ID:            uuidv7.New(),
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
		BranchCode:    input.BranchCode,
		IsActive:      input.IsActive,
	}
	if err := service.repository.CreateBankAccount(context, account); err != nil {
		return nil, fmt.Errorf("donation_service_bank_create_failed: %w", err)
	}

	service.logger.Info("bank_account_created", slog.String("account_id", account.ID))
	return account, nil
}

// ListBankAccounts returns receiving accounts. Members see active accounts
// only; admins see everything.
func (service *Service) ListBankAccounts(context context.Context, activeOnly bool) ([]*BankAccount, error) {
	accounts, err := service.repository.ListBankAccounts(context, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("donation_service_bank_list_failed: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccount replaces the editable fields of an account (admin only).
func (service *Service) UpdateBankAccount(context context.Context, accountID string, input BankAccountInput) (*BankAccount, error) {
	if err := validateBankAccount(input); err != nil {
		return nil, err
	}

	account := &BankAccount{
		ID:            accountID,
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
		BranchCode:    input.BranchCode,
		IsActive:      input.IsActive,
	}
	if err := service.repository.UpdateBankAccount(context, account); err != nil {
		return nil, fmt.Errorf("donation_service_bank_update_failed: %w", err)
	}
	return account, nil
}

// DeleteBankAccount removes an account record (admin only).
func (service *Service) DeleteBankAccount(context context.Context, accountID string) error {
	if err := service.repository.DeleteBankAccount(context, accountID); err != nil {
		return fmt.Errorf("donation_service_bank_delete_failed: %w", err)
	}

	service.logger.Info("bank_account_deleted", slog.String("account_id", accountID))
	return nil
}
