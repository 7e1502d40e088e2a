// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/climabill/climabill/internal/authorization"
	"github.com/climabill/climabill/internal/db"
	"github.com/climabill/climabill/internal/gateway"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/authentication"
	"github.com/climabill/climabill/pkg/metrics"
	"github.com/climabill/climabill/pkg/ratelimit"
	"github.com/climabill/climabill/pkg/status"
	"github.com/climabill/climabill/pkg/validation"
)

// RouterConfig collects the collaborators the HTTP surface is built from.
type RouterConfig struct {
	Gateway     gateway.GatewayInterface
	AuthService authentication.ServiceInterface
	Authorizer  authorization.AuthorizerInterface
	Recorder    audit.RecorderInterface
	Limiter     ratelimit.LimiterInterface
	Validator   *validation.Validator
	DBClient    db.DBClientInterface

	MaxRequestSize int64
	CORSOrigins    []string
}

// NewRouter assembles the middleware chain and mounts every API. Order
// matters: budgets are enforced before identities are resolved, and the
// access trail is written after the resolver so it can name the tenant.
func NewRouter(
	c RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	webMiddleware := NewMiddleware(c.Validator, c.Recorder, c.MaxRequestSize, logger)

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middlewareCORS(c.CORSOrigins),
		middlewareSecurityHeaders(),
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		webMiddleware.RequestSize(),
		ratelimit.NewMiddleware(c.Limiter, c.Recorder, logger).RateLimit(),
		authentication.NewMiddleware(c.AuthService, c.Recorder, nil, tracer, monitor, logger).ResolveTenant(),
		webMiddleware.AccessAudit(),
		db.TransactionMiddleware(c.DBClient, logger),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	NewAuthAPI(c.AuthService, c.Authorizer, c.Validator, c.Recorder, tracer, monitor, logger).RegisterEndpoints(router)
	NewRecordsAPI(c.Gateway, c.Authorizer, c.Validator, c.Recorder, tracer, monitor, logger).RegisterEndpoints(router)
	NewTenantAPI(c.Gateway, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
