// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/authentication"
	"github.com/climabill/climabill/pkg/ratelimit"
	"github.com/climabill/climabill/pkg/validation"
)

// securityHeaders are stamped on every response.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:; connect-src 'self' https:; frame-ancestors 'none';",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

func middlewareSecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for header, value := range securityHeaders {
				w.Header().Set(header, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Middleware carries the request hardening that needs collaborators: the
// body size ceiling and the access audit trail.
type Middleware struct {
	validator *validation.Validator
	recorder  audit.RecorderInterface
	maxSize   int64

	logger logging.LoggerInterface
}

func NewMiddleware(validator *validation.Validator, recorder audit.RecorderInterface, maxSize int64, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.validator = validator
	mdw.recorder = recorder
	mdw.maxSize = maxSize
	mdw.logger = logger

	return mdw
}

// RequestSize rejects oversized requests up front by declared length and
// caps the body reader for the rest, so a lying Content-Length cannot
// smuggle a larger payload past the check.
func (mdw *Middleware) RequestSize() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := mdw.validator.RequestSize(r.ContentLength, mdw.maxSize); err != nil {
				clientIP := ratelimit.ClientIP(r)
				mdw.logger.Security().OversizedRequest(clientIP, r.ContentLength)
				mdw.recorder.Record(r.Context(), types.EventOversizedRequest, audit.SeverityWarning,
					audit.RequestMeta{
						ClientIP:  clientIP,
						UserAgent: r.UserAgent(),
						Path:      r.URL.Path,
						Method:    r.Method,
					},
					map[string]interface{}{"content_length": r.ContentLength},
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "request body too large"})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, mdw.maxSize)
			next.ServeHTTP(w, r)
		})
	}
}

// AccessAudit records an API_ACCESS entry per request, after the handler
// ran, with the resolved tenant when one exists.
func (mdw *Middleware) AccessAudit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			meta := audit.RequestMeta{
				ClientIP:  ratelimit.ClientIP(r),
				UserAgent: r.UserAgent(),
				Path:      r.URL.Path,
				Method:    r.Method,
			}
			if tc, ok := authentication.GetTenantContext(r.Context()); ok {
				meta.TenantID = tc.TenantID()
				meta.UserID = tc.UserID()
			}

			mdw.recorder.RecordAccess(r.Context(), meta, rw.statusCode, time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
