// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
)

func testLimiter(store Store) *Limiter {
	return NewLimiter(store, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Class
	}{
		{path: "/api/auth/login", want: ClassAuth},
		{path: "/api/auth/refresh", want: ClassAuth},
		{path: "/api/ai/insights", want: ClassAI},
		{path: "/api/upload", want: ClassUpload},
		{path: "/api/uploads/csv", want: ClassUpload},
		{path: "/api/companies", want: ClassAPI},
		{path: "/", want: ClassAPI},
	}

	for _, test := range tests {
		if got := Classify(test.path); got != test.want {
			t.Errorf("Classify(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}

func TestMemoryStoreBudget(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		allowed, count := store.Take("auth:203.0.113.9", 5, 5*time.Minute)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if count != i+1 {
			t.Fatalf("request %d: count = %d", i+1, count)
		}
	}

	allowed, count := store.Take("auth:203.0.113.9", 5, 5*time.Minute)
	if allowed {
		t.Fatal("request over budget should be denied")
	}
	if count != 5 {
		t.Fatalf("denied request must not be counted, count = %d", count)
	}
}

func TestMemoryStoreWindowSlides(t *testing.T) {
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		store.Take("k", 5, time.Minute)
	}
	if allowed, _ := store.Take("k", 5, time.Minute); allowed {
		t.Fatal("budget should be exhausted")
	}

	current = current.Add(61 * time.Second)
	if allowed, count := store.Take("k", 5, time.Minute); !allowed || count != 1 {
		t.Fatalf("expired window should admit again, allowed=%v count=%d", allowed, count)
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		store.Take("auth:203.0.113.9", 5, time.Minute)
	}

	if allowed, _ := store.Take("auth:198.51.100.7", 5, time.Minute); !allowed {
		t.Fatal("one client's budget must not drain another's")
	}
	if allowed, _ := store.Take("api:203.0.113.9", 100, time.Minute); !allowed {
		t.Fatal("classes keep separate budgets per client")
	}
}

func TestLimiterDecision(t *testing.T) {
	limiter := testLimiter(NewMemoryStore())

	var decision Decision
	for i := 0; i < 6; i++ {
		decision = limiter.Allow("203.0.113.9", "/api/auth/login")
	}

	if decision.Allowed {
		t.Fatal("sixth auth attempt should be denied")
	}
	if decision.Class != ClassAuth || decision.Limit != 5 {
		t.Fatalf("wrong decision: %+v", decision)
	}
	if decision.Window != 5*time.Minute {
		t.Fatalf("wrong window: %v", decision.Window)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{name: "RemoteAddr", remoteAddr: "203.0.113.9:51234", want: "203.0.113.9"},
		{name: "ForwardedFirstHop", remoteAddr: "10.0.0.1:80", forwarded: "203.0.113.9, 10.0.0.2", want: "203.0.113.9"},
		{name: "ForwardedSingle", remoteAddr: "10.0.0.1:80", forwarded: "203.0.113.9", want: "203.0.113.9"},
		{name: "RealIP", remoteAddr: "10.0.0.1:80", realIP: "198.51.100.7", want: "198.51.100.7"},
		{name: "ForwardedBeatsRealIP", remoteAddr: "10.0.0.1:80", forwarded: "203.0.113.9", realIP: "198.51.100.7", want: "203.0.113.9"},
		{name: "BareRemoteAddr", remoteAddr: "203.0.113.9", want: "203.0.113.9"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/companies", nil)
			r.RemoteAddr = test.remoteAddr
			if test.forwarded != "" {
				r.Header.Set("X-Forwarded-For", test.forwarded)
			}
			if test.realIP != "" {
				r.Header.Set("X-Real-IP", test.realIP)
			}

			if got := ClientIP(r); got != test.want {
				t.Fatalf("got %q, want %q", got, test.want)
			}
		})
	}
}
