// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/ratelimit"
)

// defaultBypassPaths are served without a resolved tenant: health, docs and
// the endpoints that mint credentials in the first place.
var defaultBypassPaths = []string{
	"/api/status",
	"/api/version",
	"/api/metrics",
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh",
	"/api/docs",
	"/api/openapi.json",
}

// Middleware resolves the tenant identity of every request before any
// handler runs. Requests without a resolvable tenant are rejected unless
// their path is on the bypass list.
type Middleware struct {
	service  ServiceInterface
	recorder audit.RecorderInterface
	bypass   []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(service ServiceInterface, recorder audit.RecorderInterface, bypass []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.service = service
	mdw.recorder = recorder
	mdw.bypass = bypass
	if mdw.bypass == nil {
		mdw.bypass = defaultBypassPaths
	}

	mdw.logger = logger
	mdw.tracer = tracer
	mdw.monitor = monitor

	return mdw
}

func (mdw *Middleware) ResolveTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := mdw.tracer.Start(r.Context(), "authentication.Middleware.ResolveTenant")
			defer span.End()

			if mdw.bypassed(r.URL.Path) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			clientIP := ratelimit.ClientIP(r)

			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
				tc, err := mdw.service.ResolveAPIKey(ctx, apiKey)
				if err != nil {
					mdw.logger.Security().InvalidAPIKey(clientIP)
					mdw.recorder.Record(ctx, types.EventInvalidAPIKey, audit.SeverityWarning,
						audit.RequestMeta{
							ClientIP:  clientIP,
							UserAgent: r.UserAgent(),
							Path:      r.URL.Path,
							Method:    r.Method,
						}, nil)
					mdw.unauthorizedResponse(w, "invalid API key")
					return
				}

				ctx = WithTenantContext(ctx, tc)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			bearer, found := mdw.getBearerToken(r.Header)
			if !found {
				mdw.logger.Security().AuthnFailure(clientIP, "missing credentials")
				mdw.unauthorizedResponse(w, "missing authorization header")
				return
			}

			tc, err := mdw.service.ResolveAccessToken(ctx, bearer)
			if err != nil {
				mdw.logger.Security().AuthnFailure(clientIP, err.Error())
				mdw.unauthorizedResponse(w, "invalid token")
				return
			}

			ctx = WithTenantContext(ctx, tc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (mdw *Middleware) bypassed(path string) bool {
	for _, p := range mdw.bypass {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (mdw *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	return strings.TrimPrefix(bearer, "Bearer "), true
}

func (mdw *Middleware) unauthorizedResponse(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": message,
	}); err != nil {
		mdw.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}
