// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package donation implements donation tracking: member donations and pledges
against events, plus the admin-managed bank account records donors pay into.

A pledge emits exactly one notification post to the community feed, written in
the same transaction as the pledge row.
*/
package donation

import "time"

// # Status Taxonomy

// Status tracks a donation through its settlement lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Statuses lists every valid settlement state.
var Statuses = []string{string(StatusPending), string(StatusConfirmed), string(StatusFailed)}

// # Core Entities

// Donation is a member's payment record, optionally tied to an event.
type Donation struct {
	ID      string  `json:"id"`
	DonorID string  `json:"donor_id"`
	EventID *string `json:"event_id,omitempty"`
	Amount  float64 `json:"amount"`

	// Reference is the bank transfer reference donors quote when paying.
	Reference string `json:"reference"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Pledge is a member's promise of a future donation toward an event.
type Pledge struct {
	ID        string    `json:"id"`
	PledgerID string    `json:"pledger_id"`
	EventID   string    `json:"event_id"`
	Amount    float64   `json:"amount"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// BankAccount is an admin-managed record of where donations are received.
type BankAccount struct {
	ID            string    `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	BranchCode    string    `json:"branch_code"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// # JSON Field Identifiers

const (
	FieldAmount        = "amount"
	FieldReference     = "reference"
	FieldStatus        = "status"
	FieldBankName      = "bank_name"
	FieldAccountName   = "account_name"
	FieldAccountNumber = "account_number"
)
