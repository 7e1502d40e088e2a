// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/climabill/climabill/internal/gateway"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/pkg/authentication"
)

// TenantAPI exposes the caller's own tenant: subscription details and
// per-collection record counts, all through the scoped gateway.
type TenantAPI struct {
	gateway gateway.GatewayInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewTenantAPI(gw gateway.GatewayInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *TenantAPI {
	a := new(TenantAPI)

	a.gateway = gw

	a.logger = logger
	a.tracer = tracer
	a.monitor = monitor

	return a
}

func (a *TenantAPI) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/tenant/stats", a.handleStats)
}

type tenantStatsResponse struct {
	TenantID     string           `json:"tenant_id"`
	Name         string           `json:"name"`
	Plan         string           `json:"plan"`
	CurrentUsers int              `json:"current_users"`
	MaxUsers     int              `json:"max_users"`
	Features     []string         `json:"features_enabled"`
	Records      map[string]int64 `json:"records"`
}

func (a *TenantAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "web.TenantAPI.handleStats")
	defer span.End()

	tc, ok := authentication.GetTenantContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	scope, err := a.gateway.Scope(tc)
	if err != nil {
		a.logger.Errorf("failed to open gateway scope: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	records := make(map[string]int64, len(knownCollections))
	for collection := range knownCollections {
		count, err := scope.Count(ctx, collection, nil)
		if err != nil {
			a.logger.Errorf("failed to count %s: %v", collection, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		records[collection] = count
	}

	tenant := tc.Tenant()
	writeJSON(w, http.StatusOK, tenantStatsResponse{
		TenantID:     tenant.ID,
		Name:         tenant.Name,
		Plan:         string(tenant.Plan),
		CurrentUsers: tenant.CurrentUsers,
		MaxUsers:     tenant.MaxUsers,
		Features:     tenant.FeaturesEnabled,
		Records:      records,
	})
}
