// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/audit"
)

// Middleware rejects requests over budget before any handler work happens.
type Middleware struct {
	limiter  LimiterInterface
	recorder audit.RecorderInterface
	logger   logging.LoggerInterface
}

func NewMiddleware(limiter LimiterInterface, recorder audit.RecorderInterface, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.limiter = limiter
	mdw.recorder = recorder
	mdw.logger = logger

	return mdw
}

func (mdw *Middleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r)

			decision := mdw.limiter.Allow(clientIP, r.URL.Path)
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			mdw.logger.Security().RateLimited(clientIP, string(decision.Class), decision.Count, decision.Limit)
			mdw.recorder.Record(r.Context(), types.EventRateLimitExceeded, audit.SeverityWarning,
				audit.RequestMeta{
					ClientIP:  clientIP,
					UserAgent: r.UserAgent(),
					Path:      r.URL.Path,
					Method:    r.Method,
				},
				map[string]interface{}{
					"class": string(decision.Class),
					"count": decision.Count,
					"limit": decision.Limit,
				},
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(decision.Window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "rate limit exceeded, try again later",
			})
		})
	}
}
