// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

/*
Package member implements the membership domain: user records, the approval
lifecycle, admin grants, and the voluntary exit flow.

# Lifecycle

Every first login creates a user in "pending" status. An admin approves or
rejects the membership; approval unlocks the community surfaces, rejection is
sticky — a rejected alum who logs in again stays rejected until an admin
re-approves them. Voluntary exit audits the departure and demotes the account
to rejected in a single transaction.

# Architecture

This layer is the "Truth" of the membership system. Login callbacks only
upsert display fields; status and the admin flag change exclusively through
the operations defined here.
*/
package member

import (
	"time"
)

// # Membership Status

// Status is the membership lifecycle state of a user.
type Status string

const (
	// StatusPending marks a freshly registered user awaiting admin review.
	StatusPending Status = "pending"

	// StatusApproved marks a full member with access to community surfaces.
	StatusApproved Status = "approved"

	// StatusRejected marks a refused or departed membership. Sticky across
	// logins: only an explicit admin approval leaves this state.
	StatusRejected Status = "rejected"
)

// # Domain Entities

// User represents an alum account, keyed by the provider-issued subject ID.
type User struct {
	ID              string  `json:"id"` // Provider subject ID, not a UUID
	Email           string  `json:"email,omitempty"`
	FirstName       string  `json:"first_name,omitempty"`
	LastName        string  `json:"last_name,omitempty"`
	ProfileImageURL string  `json:"profile_image_url,omitempty"`
	Status          Status  `json:"status"`
	IsAdmin         bool    `json:"is_admin"`
	GraduationYear  *int    `json:"graduation_year,omitempty"`
	Major           *string `json:"major,omitempty"`
	Company         *string `json:"company,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	Location        *string `json:"location,omitempty"`
	Bio             *string `json:"bio,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the best human-readable name for announcements.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != "":
		return u.Email
	default:
		return "A member"
	}
}

// CommunityExit is the audit record of a voluntary departure.
type CommunityExit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation in the membership domain.
const (
	FieldReason         = "reason"
	FieldGraduationYear = "graduation_year"
	FieldBio            = "bio"
)
