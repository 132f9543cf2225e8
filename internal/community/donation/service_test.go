// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package donation

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/platform/apperr"
)

// memoryRepository is an in-memory Repository mirroring the store semantics.
type memoryRepository struct {
	donations     []*Donation
	pledges       []*Pledge
	notifications []string
	accounts      map[string]*BankAccount
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{accounts: make(map[string]*BankAccount)}
}

func (repository *memoryRepository) CreateDonation(_ context.Context, donation *Donation) error {
	clone := *donation
	repository.donations = append(repository.donations, &clone)
	return nil
}

func (repository *memoryRepository) ListDonationsByEvent(_ context.Context, eventID string) ([]*Donation, error) {
	var out []*Donation
	for _, donation := range repository.donations {
		if donation.EventID != nil && *donation.EventID == eventID {
			clone := *donation
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (repository *memoryRepository) UpdateDonationStatus(_ context.Context, donationID string, status Status) error {
	for _, donation := range repository.donations {
		if donation.ID == donationID {
			donation.Status = status
			return nil
		}
	}
	return apperr.NotFound("Donation")
}

func (repository *memoryRepository) CreatePledge(_ context.Context, pledge *Pledge, notification string) error {
	clone := *pledge
	repository.pledges = append(repository.pledges, &clone)
	repository.notifications = append(repository.notifications, notification)
	return nil
}

func (repository *memoryRepository) ListPledgesByEvent(_ context.Context, eventID string) ([]*Pledge, error) {
	var out []*Pledge
	for _, pledge := range repository.pledges {
		if pledge.EventID == eventID {
			clone := *pledge
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (repository *memoryRepository) CreateBankAccount(_ context.Context, account *BankAccount) error {
	clone := *account
	repository.accounts[account.ID] = &clone
	return nil
}

func (repository *memoryRepository) ListBankAccounts(_ context.Context, activeOnly bool) ([]*BankAccount, error) {
	var out []*BankAccount
	for _, account := range repository.accounts {
		if activeOnly && !account.IsActive {
			continue
		}
		clone := *account
		out = append(out, &clone)
	}
	return out, nil
}

func (repository *memoryRepository) UpdateBankAccount(_ context.Context, account *BankAccount) error {
	if _, found := repository.accounts[account.ID]; !found {
		return apperr.NotFound("Bank account")
	}
	clone := *account
	repository.accounts[account.ID] = &clone
	return nil
}

func (repository *memoryRepository) DeleteBankAccount(_ context.Context, accountID string) error {
	if _, found := repository.accounts[accountID]; !found {
		return apperr.NotFound("Bank account")
	}
	delete(repository.accounts, accountID)
	return nil
}

// scriptedDirectory answers the name and title lookups with fixtures.
type scriptedDirectory struct{}

func (scriptedDirectory) DisplayNameOf(_ context.Context, userID string) (string, error) {
	if userID == "member-1" {
		return "Dana Whitfield", nil
	}
	return "", apperr.NotFound("User")
}

func (scriptedDirectory) EventTitle(_ context.Context, eventID string) (string, error) {
	if eventID == "event-1" {
		return "Class of 2012 Reunion", nil
	}
	return "", apperr.NotFound("Event")
}

func newTestService() (*Service, *memoryRepository) {
	repository := newMemoryRepository()
	return NewService(repository, scriptedDirectory{}, scriptedDirectory{}, slog.New(slog.DiscardHandler)), repository
}

/*
TestService_CreateDonation verifies recording, the pending initial state, and
amount validation.
*/
func TestService_CreateDonation(t *testing.T) {
	service, _ := newTestService()

	eventID := "event-1"
	donation, err := service.CreateDonation(context.Background(), "member-1", &eventID, 250, "TRF-001")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, donation.Status)

	listed, err := service.ListDonations(context.Background(), "event-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 250.0, listed[0].Amount)

	_, err = service.CreateDonation(context.Background(), "member-1", nil, 0, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_UpdateStatus verifies the settlement lifecycle and status
validation.
*/
func TestService_UpdateStatus(t *testing.T) {
	service, repository := newTestService()

	donation, err := service.CreateDonation(context.Background(), "member-1", nil, 100, "TRF-002")
	require.NoError(t, err)

	require.NoError(t, service.UpdateStatus(context.Background(), donation.ID, StatusConfirmed))
	assert.Equal(t, StatusConfirmed, repository.donations[0].Status)

	err = service.UpdateStatus(context.Background(), donation.ID, Status("refunded"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_CreatePledge verifies the pledge and its single feed notification,
plus the unknown-event path.
*/
func TestService_CreatePledge(t *testing.T) {
	service, repository := newTestService()

	pledge, err := service.CreatePledge(context.Background(), "member-1", "event-1", 500, "monthly")
	require.NoError(t, err)
	assert.Equal(t, "event-1", pledge.EventID)

	require.Len(t, repository.notifications, 1)
	assert.Equal(t, "Dana Whitfield pledged 500.00 toward Class of 2012 Reunion.", repository.notifications[0])

	_, err = service.CreatePledge(context.Background(), "member-1", "missing-event", 500, "")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Len(t, repository.pledges, 1, "failed pledge must not persist")
}

/*
TestService_BankAccounts verifies the admin CRUD and the active-only member
listing.
*/
func TestService_BankAccounts(t *testing.T) {
	service, _ := newTestService()

	active, err := service.CreateBankAccount(context.Background(), BankAccountInput{
		BankName:      "First Alumni Bank",
		AccountName:   "AlumHub Fund",
		AccountNumber: "0123456789",
		BranchCode:    "001",
		IsActive:      true,
	})
	require.NoError(t, err)

	_, err = service.CreateBankAccount(context.Background(), BankAccountInput{
		BankName:      "Old Bank",
		AccountName:   "Legacy Fund",
		AccountNumber: "9876543210",
		IsActive:      false,
	})
	require.NoError(t, err)

	memberView, err := service.ListBankAccounts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, memberView, 1)
	assert.Equal(t, active.ID, memberView[0].ID)

	adminView, err := service.ListBankAccounts(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, adminView, 2)

	_, err = service.CreateBankAccount(context.Background(), BankAccountInput{BankName: "No Details"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	require.NoError(t, service.DeleteBankAccount(context.Background(), active.ID))
	err = service.DeleteBankAccount(context.Background(), active.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
