// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package token mints and verifies the signed credentials that carry a
// tenant identity between requests.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("token is malformed")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims is the verified content of a token. TenantID and UserID are always
// populated; verification fails rather than returning partial claims.
type Claims struct {
	UserID   string
	TenantID string
	Email    string
	Role     types.Role
	Type     string
}

func (c *Claims) GetTenantID() string {
	return c.TenantID
}

var _ TokenIssuerInterface = (*Service)(nil)
var _ TokenVerifierInterface = (*Service)(nil)

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.secret = secret
	s.accessTTL = accessTTL
	s.refreshTTL = refreshTTL

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Service) IssueAccessToken(ctx context.Context, user *types.User) (string, error) {
	_, span := s.tracer.Start(ctx, "token.Service.IssueAccessToken")
	defer span.End()

	return s.issue(user, TypeAccess, s.accessTTL)
}

func (s *Service) IssueRefreshToken(ctx context.Context, user *types.User) (string, error) {
	_, span := s.tracer.Start(ctx, "token.Service.IssueRefreshToken")
	defer span.End()

	return s.issue(user, TypeRefresh, s.refreshTTL)
}

func (s *Service) issue(user *types.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	jti, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}

	claims := jwt.MapClaims{
		"sub":       user.ID,
		"tenant_id": user.TenantID,
		"email":     user.Email,
		"role":      string(user.Role),
		"type":      tokenType,
		"jti":       jti.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) VerifyAccessToken(ctx context.Context, raw string) (*Claims, error) {
	_, span := s.tracer.Start(ctx, "token.Service.VerifyAccessToken")
	defer span.End()

	return s.verify(raw, TypeAccess)
}

func (s *Service) VerifyRefreshToken(ctx context.Context, raw string) (*Claims, error) {
	_, span := s.tracer.Start(ctx, "token.Service.VerifyRefreshToken")
	defer span.End()

	return s.verify(raw, TypeRefresh)
}

func (s *Service) verify(raw, wantType string) (*Claims, error) {
	parsed, err := jwt.Parse(
		raw,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	claims := &Claims{
		UserID:   stringClaim(mapClaims, "sub"),
		TenantID: stringClaim(mapClaims, "tenant_id"),
		Email:    stringClaim(mapClaims, "email"),
		Role:     types.Role(stringClaim(mapClaims, "role")),
		Type:     stringClaim(mapClaims, "type"),
	}

	// A token that verifies but names no principal is useless and treated
	// as malformed.
	if claims.UserID == "" || claims.TenantID == "" {
		return nil, ErrMalformedToken
	}

	if claims.Type != wantType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
