// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package stats_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumhub/alumhub/internal/community/stats"
	"github.com/alumhub/alumhub/internal/platform/apperr"
)

type fixedRepository struct {
	snapshot *stats.Snapshot
	err      error
}

func (repository fixedRepository) Snapshot(context.Context) (*stats.Snapshot, error) {
	return repository.snapshot, repository.err
}

func TestHandler_GetSnapshot(t *testing.T) {
	handler := stats.NewHandler(fixedRepository{snapshot: &stats.Snapshot{
		ApprovedMembers: 42,
		PendingMembers:  3,
		TotalDonations:  1250.50,
		EventsThisYear:  6,
	}})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.MemberRoutes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{
		"approved_members": 42,
		"pending_members": 3,
		"total_donations": 1250.50,
		"events_this_year": 6
	}}`, recorder.Body.String())
}

func TestHandler_GetSnapshot_Failure(t *testing.T) {
	handler := stats.NewHandler(fixedRepository{err: apperr.Internal(assert.AnError)})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.MemberRoutes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
}
