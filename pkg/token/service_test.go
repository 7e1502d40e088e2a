// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package token

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

func testService(accessTTL time.Duration) *Service {
	return NewService(
		[]byte("test-secret"),
		accessTTL,
		168*time.Hour,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)
}

func testUser() *types.User {
	return &types.User{
		ID:       "user-1",
		TenantID: "tenant-1",
		Email:    "admin@acme.example",
		Role:     types.RoleAdmin,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService(30 * time.Minute)
	ctx := context.Background()

	raw, err := svc.IssueAccessToken(ctx, testUser())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.VerifyAccessToken(ctx, raw)
	if err != nil {
		t.Fatal(err)
	}

	if claims.UserID != "user-1" || claims.TenantID != "tenant-1" {
		t.Fatalf("wrong principal in claims: %+v", claims)
	}
	if claims.Email != "admin@acme.example" || claims.Role != types.RoleAdmin {
		t.Fatalf("wrong identity claims: %+v", claims)
	}
	if claims.Type != TypeAccess {
		t.Fatalf("expected access token, got %q", claims.Type)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := testService(-time.Minute)
	ctx := context.Background()

	raw, err := svc.IssueAccessToken(ctx, testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.VerifyAccessToken(ctx, raw); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := testService(30 * time.Minute)
	ctx := context.Background()

	raw, err := svc.IssueAccessToken(ctx, testUser())
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(raw, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := svc.VerifyAccessToken(ctx, tampered); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	ctx := context.Background()

	raw, err := testService(30 * time.Minute).IssueAccessToken(ctx, testUser())
	if err != nil {
		t.Fatal(err)
	}

	other := NewService([]byte("other-secret"), 30*time.Minute, 168*time.Hour,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())

	if _, err := other.VerifyAccessToken(ctx, raw); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := testService(30 * time.Minute)
	ctx := context.Background()

	refresh, err := svc.IssueRefreshToken(ctx, testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.VerifyAccessToken(ctx, refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("expected ErrWrongTokenType, got %v", err)
	}

	claims, err := svc.VerifyRefreshToken(ctx, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Type != TypeRefresh {
		t.Fatalf("expected refresh token, got %q", claims.Type)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := testService(30 * time.Minute)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.VerifyAccessToken(context.Background(), raw); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", raw, err)
		}
	}
}
