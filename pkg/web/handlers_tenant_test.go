// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	gomock "go.uber.org/mock/gomock"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

func TestTenantStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gw := NewMockGatewayInterface(ctrl)
	scope := NewMockScopeInterface(ctrl)

	gw.EXPECT().Scope(gomock.Any()).Return(scope, nil)
	scope.EXPECT().
		Count(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(int64(7), nil).
		Times(len(knownCollections))

	api := NewTenantAPI(gw, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	r := authenticated(httptest.NewRequest(http.MethodGet, "/api/tenant/stats", nil), types.RoleViewer)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats tenantStatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TenantID != "tenant-1" || stats.Plan != "enterprise" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.Records) != len(knownCollections) {
		t.Fatalf("expected %d collections, got %d", len(knownCollections), len(stats.Records))
	}
	for collection, count := range stats.Records {
		if count != 7 {
			t.Errorf("collection %s: expected 7, got %d", collection, count)
		}
	}
}

func TestTenantStatsUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := NewTenantAPI(NewMockGatewayInterface(ctrl), tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tenant/stats", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
