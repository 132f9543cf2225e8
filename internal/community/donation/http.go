// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package donation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/alumhub/alumhub/internal/platform/request"
	"github.com/alumhub/alumhub/internal/platform/respond"
)

// Handler implements the HTTP layer for donation tracking.
type Handler struct {
	service *Service
}

// NewHandler constructs a new donation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DonationRoutes returns the donation recording routes.
// Mounted at /api/donations behind the approved-member gate.
func (handler *Handler) DonationRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createDonation)

	return router
}

// PledgeRoutes returns the pledge recording routes.
// Mounted at /api/pledges behind the approved-member gate.
func (handler *Handler) PledgeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createPledge)

	return router
}

// EventDonationRoutes returns the per-event donation listing.
// Mounted at /api/events/{eventID}/donations.
func (handler *Handler) EventDonationRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDonations)

	return router
}

// EventPledgeRoutes returns the per-event pledge listing.
// Mounted at /api/events/{eventID}/pledges.
func (handler *Handler) EventPledgeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPledges)

	return router
}

// BankAccountRoutes returns the member-visible receiving accounts.
// Mounted at /api/bank-accounts; lists active records only.
func (handler *Handler) BankAccountRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listActiveBankAccounts)

	return router
}

// AdminDonationRoutes returns the settlement administration routes.
// Mounted at /api/admin/donations.
func (handler *Handler) AdminDonationRoutes() chi.Router {
	router := chi.NewRouter()

	router.Put("/{id}/status", handler.updateDonationStatus)

	return router
}

// AdminBankAccountRoutes returns the receiving-account administration routes.
// Mounted at /api/admin/bank-accounts.
func (handler *Handler) AdminBankAccountRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createBankAccount)
	router.Get("/", handler.listAllBankAccounts)
	router.Put("/{id}", handler.updateBankAccount)
	router.Delete("/{id}", handler.deleteBankAccount)

	return router
}

// # Member Endpoints

// donationRequest is the JSON body for POST /api/donations.
type donationRequest struct {
	EventID   *string `json:"event_id"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

/*
POST /api/donations.

Response:
  - 201: Donation: The recorded donation, in pending state
  - 400: VALIDATION_ERROR: Non-positive amount
*/
func (handler *Handler) createDonation(writer http.ResponseWriter, request *http.Request) {
	donorID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body donationRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	donation, err := handler.service.CreateDonation(request.Context(), donorID, body.EventID, body.Amount, body.Reference)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, donation)
}

/*
GET /api/events/{eventID}/donations.

Response:
  - 200: []Donation: The event's donations, newest first
*/
func (handler *Handler) listDonations(writer http.ResponseWriter, request *http.Request) {
	donations, err := handler.service.ListDonations(request.Context(), requestutil.Param(request, "eventID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, donations)
}

// pledgeRequest is the JSON body for POST /api/pledges.
type pledgeRequest struct {
	EventID   string  `json:"event_id"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

/*
POST /api/pledges.

Description: Records the pledge and publishes one notification post to the
community feed in the same transaction.

Response:
  - 201: Pledge: The recorded pledge
  - 400: VALIDATION_ERROR: Non-positive amount
  - 404: NOT_FOUND: Unknown event
*/
func (handler *Handler) createPledge(writer http.ResponseWriter, request *http.Request) {
	pledgerID, err := requestutil.RequiredSubjectID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body pledgeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pledge, err := handler.service.CreatePledge(request.Context(), pledgerID, body.EventID, body.Amount, body.Reference)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, pledge)
}

/*
GET /api/events/{eventID}/pledges.

Response:
  - 200: []Pledge: The event's pledges, newest first
*/
func (handler *Handler) listPledges(writer http.ResponseWriter, request *http.Request) {
	pledges, err := handler.service.ListPledges(request.Context(), requestutil.Param(request, "eventID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pledges)
}

/*
GET /api/bank-accounts.

Response:
  - 200: []BankAccount: Active receiving accounts donors can pay into
*/
func (handler *Handler) listActiveBankAccounts(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.service.ListBankAccounts(request.Context(), true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accounts)
}

// # Admin Endpoints

// donationStatusRequest is the JSON body for PUT /api/admin/donations/{id}/status.
type donationStatusRequest struct {
	Status string `json:"status"`
}

/*
PUT /api/admin/donations/{id}/status.

Response:
  - 204: Settlement state updated
  - 400: VALIDATION_ERROR: Unknown status
  - 404: NOT_FOUND: Unknown donation
*/
func (handler *Handler) updateDonationStatus(writer http.ResponseWriter, request *http.Request) {
	var body donationStatusRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateStatus(request.Context(), requestutil.Param(request, "id"), Status(body.Status)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// bankAccountRequest is the JSON body for bank account create and update.
type bankAccountRequest struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BranchCode    string `json:"branch_code"`
	IsActive      bool   `json:"is_active"`
}

func (body bankAccountRequest) toInput() BankAccountInput {
	return BankAccountInput{
		BankName:      body.BankName,
		AccountName:   body.AccountName,
		AccountNumber: body.AccountNumber,
		BranchCode:    body.BranchCode,
		IsActive:      body.IsActive,
	}
}

/*
POST /api/admin/bank-accounts.

Response:
  - 201: BankAccount: The created record
  - 400: VALIDATION_ERROR: Missing bank or account details
*/
func (handler *Handler) createBankAccount(writer http.ResponseWriter, request *http.Request) {
	var body bankAccountRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.CreateBankAccount(request.Context(), body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

/*
GET /api/admin/bank-accounts.

Response:
  - 200: []BankAccount: Every record including inactive ones
*/
func (handler *Handler) listAllBankAccounts(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.service.ListBankAccounts(request.Context(), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accounts)
}

/*
PUT /api/admin/bank-accounts/{id}.

Response:
  - 200: BankAccount: The updated record
  - 404: NOT_FOUND: Unknown record
*/
func (handler *Handler) updateBankAccount(writer http.ResponseWriter, request *http.Request) {
	var body bankAccountRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.UpdateBankAccount(request.Context(), requestutil.Param(request, "id"), body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

/*
DELETE /api/admin/bank-accounts/{id}.

Response:
  - 204: Record removed
  - 404: NOT_FOUND: Unknown record
*/
func (handler *Handler) deleteBankAccount(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBankAccount(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
