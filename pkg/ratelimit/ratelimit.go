// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package ratelimit enforces per-client sliding-window budgets, with
// tighter budgets on the endpoint classes worth brute-forcing.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
)

// Class is a request budget class derived from the request path.
type Class string

const (
	ClassAuth   Class = "auth"
	ClassAPI    Class = "api"
	ClassAI     Class = "ai"
	ClassUpload Class = "upload"
)

// Budget is the admission budget of one class.
type Budget struct {
	Limit  int
	Window time.Duration
}

// DefaultBudgets keeps credential and costly endpoints on short leashes
// while general API traffic gets room to breathe.
var DefaultBudgets = map[Class]Budget{
	ClassAuth:   {Limit: 5, Window: 5 * time.Minute},
	ClassAPI:    {Limit: 100, Window: time.Minute},
	ClassAI:     {Limit: 10, Window: time.Minute},
	ClassUpload: {Limit: 5, Window: 5 * time.Minute},
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed bool
	Class   Class
	Count   int
	Limit   int
	Window  time.Duration
}

var _ LimiterInterface = (*Limiter)(nil)

type Limiter struct {
	store   Store
	budgets map[Class]Budget

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewLimiter(store Store, budgets map[Class]Budget, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Limiter {
	l := new(Limiter)

	l.store = store
	l.budgets = budgets
	if l.budgets == nil {
		l.budgets = DefaultBudgets
	}

	l.logger = logger
	l.tracer = tracer
	l.monitor = monitor

	return l
}

// Classify maps a request path to its budget class.
func Classify(path string) Class {
	switch {
	case strings.Contains(path, "/auth/"):
		return ClassAuth
	case strings.Contains(path, "/ai/"):
		return ClassAI
	case strings.Contains(path, "/upload"):
		return ClassUpload
	default:
		return ClassAPI
	}
}

func (l *Limiter) Allow(clientIP, path string) Decision {
	class := Classify(path)
	budget := l.budgets[class]

	allowed, count := l.store.Take(string(class)+":"+clientIP, budget.Limit, budget.Window)

	return Decision{
		Allowed: allowed,
		Class:   class,
		Count:   count,
		Limit:   budget.Limit,
		Window:  budget.Window,
	}
}

// ClientIP resolves the caller's address: first hop of X-Forwarded-For,
// then X-Real-IP, then the connection's remote address. The forwarding
// headers are only meaningful behind a proxy that sets them.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
