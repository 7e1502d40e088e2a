// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package authentication resolves who a request acts for. It owns signup,
// login, token refresh and API keys, and turns verified credentials into a
// TenantContext.
package authentication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

// dummyHash keeps the password comparison on the same code path whether or
// not the user exists, so response timing does not leak account presence.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("climabill-dummy"), bcrypt.DefaultCost)

// planMaxUsers caps seats per subscription tier.
var planMaxUsers = map[types.Plan]int{
	types.PlanStarter:      5,
	types.PlanProfessional: 50,
	types.PlanEnterprise:   500,
}

// planFeatures lists the features each tier enables.
var planFeatures = map[types.Plan][]string{
	types.PlanStarter:      {"emissions", "suppliers"},
	types.PlanProfessional: {"emissions", "suppliers", "marketplace", "supply_chain"},
	types.PlanEnterprise:   {"emissions", "suppliers", "marketplace", "supply_chain", "compliance", "ai_insights"},
}

// PlanMaxUsers returns the seat cap for a subscription tier.
func PlanMaxUsers(p types.Plan) int {
	return planMaxUsers[p]
}

// PlanFeatures returns the features a subscription tier enables.
func PlanFeatures(p types.Plan) []string {
	return planFeatures[p]
}

type RegisterRequest struct {
	TenantName   string
	TenantDomain string
	Plan         types.Plan

	Email     string
	Password  string
	FirstName string
	LastName  string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage   StorageInterface
	issuer    TokenIssuerInterface
	verifier  TokenVerifierInterface
	accessTTL time.Duration

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewService(store StorageInterface, issuer TokenIssuerInterface, verifier TokenVerifierInterface, accessTTL time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = store
	s.issuer = issuer
	s.verifier = verifier
	s.accessTTL = accessTTL

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Register")
	defer span.End()

	plan := req.Plan
	if !plan.Valid() {
		plan = types.PlanStarter
	}

	tenant, err := s.storage.CreateTenant(ctx, &types.Tenant{
		Name:            req.TenantName,
		Domain:          req.TenantDomain,
		Plan:            plan,
		MaxUsers:        planMaxUsers[plan],
		FeaturesEnabled: planFeatures[plan],
		Settings:        map[string]interface{}{},
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrDuplicateTenant
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The first user of a tenant is its admin.
	user, err := s.storage.CreateUser(ctx, &types.User{
		TenantID:       tenant.ID,
		Email:          req.Email,
		HashedPassword: string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           types.RoleAdmin,
		IsVerified:     false,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	if err := s.storage.UpdateTenantUserCount(ctx, tenant.ID, 1); err != nil {
		return nil, err
	}

	s.logger.Security().LoginSuccess(tenant.ID, user.ID)

	return s.issuePair(ctx, user)
}

func (s *Service) Login(ctx context.Context, tenantDomain, email, password string) (*TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Login")
	defer span.End()

	tenant, err := s.storage.GetActiveTenantByDomain(ctx, tenantDomain)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().LoginFailure("unknown tenant", tenantDomain)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := s.storage.GetActiveUserByEmail(ctx, tenant.ID, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn a comparison anyway.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.Security().LoginFailure("unknown user", tenantDomain)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		s.logger.Security().LoginFailure("wrong password", tenantDomain)
		return nil, ErrInvalidCredentials
	}

	if err := s.storage.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warnf("failed to update last login for user %s: %v", user.ID, err)
	}

	s.logger.Security().LoginSuccess(tenant.ID, user.ID)

	return s.issuePair(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Refresh")
	defer span.End()

	claims, err := s.verifier.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.storage.GetActiveTenantByID(ctx, claims.TenantID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantInactive
		}
		return nil, err
	}

	user, err := s.storage.GetActiveUserByID(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issuePair(ctx, user)
}

func (s *Service) issuePair(ctx context.Context, user *types.User) (*TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issuer.IssueRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// AddUser provisions another seat in the caller's tenant, subject to the
// plan's seat limit.
func (s *Service) AddUser(ctx context.Context, tc *TenantContext, email, password, firstName, lastName string, role types.Role) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.AddUser")
	defer span.End()

	count, err := s.storage.CountActiveUsers(ctx, tc.TenantID())
	if err != nil {
		return nil, err
	}
	if count >= int64(tc.Tenant().MaxUsers) {
		return nil, ErrUserLimitReached
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if !role.Valid() {
		role = types.RoleViewer
	}

	user, err := s.storage.CreateUser(ctx, &types.User{
		TenantID:       tc.TenantID(),
		Email:          email,
		HashedPassword: string(hashed),
		FirstName:      firstName,
		LastName:       lastName,
		Role:           role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	if err := s.storage.UpdateTenantUserCount(ctx, tc.TenantID(), 1); err != nil {
		return nil, err
	}

	return user, nil
}

// ResolveAccessToken turns a bearer token into a TenantContext, re-checking
// that both the tenant and the user are still active.
func (s *Service) ResolveAccessToken(ctx context.Context, raw string) (*TenantContext, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.ResolveAccessToken")
	defer span.End()

	claims, err := s.verifier.VerifyAccessToken(ctx, raw)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	tenant, err := s.storage.GetActiveTenantByID(ctx, claims.TenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantInactive
		}
		return nil, err
	}

	user, err := s.storage.GetActiveUserByID(ctx, tenant.ID, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Role comes from the user record, not the token, so demotions take
	// effect without waiting for expiry.
	return NewTenantContext(tenant, user.ID, user.Email, user.Role, MethodJWT), nil
}

// ResolveAPIKey authenticates a raw API key and maps its permission grants
// onto the role model.
func (s *Service) ResolveAPIKey(ctx context.Context, raw string) (*TenantContext, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.ResolveAPIKey")
	defer span.End()

	if !looksLikeAPIKey(raw) {
		return nil, ErrInvalidAPIKey
	}

	key, err := s.storage.GetActiveAPIKeyByHash(ctx, hashAPIKey(raw))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}

	tenant, err := s.storage.GetActiveTenantByID(ctx, key.TenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantInactive
		}
		return nil, err
	}

	if err := s.storage.TouchAPIKey(ctx, key.ID); err != nil {
		s.logger.Warnf("failed to update API key usage for %s: %v", key.ID, err)
	}

	return NewTenantContext(tenant, key.CreatedBy, "", roleForPermissions(key.Permissions), MethodAPIKey), nil
}

// roleForPermissions maps API key grants to the weakest role covering them.
func roleForPermissions(permissions []string) types.Role {
	role := types.RoleViewer
	for _, p := range permissions {
		switch p {
		case "admin":
			return types.RoleAdmin
		case "write":
			if !role.AtLeast(types.RoleManager) {
				role = types.RoleManager
			}
		}
	}
	return role
}

func (s *Service) CreateAPIKey(ctx context.Context, tc *TenantContext, name string, permissions []string) (string, *types.APIKey, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.CreateAPIKey")
	defer span.End()

	plaintext, hash, err := generateAPIKey()
	if err != nil {
		return "", nil, err
	}

	key, err := s.storage.CreateAPIKey(ctx, &types.APIKey{
		TenantID:    tc.TenantID(),
		Name:        name,
		KeyHash:     hash,
		Permissions: permissions,
		CreatedBy:   tc.UserID(),
	})
	if err != nil {
		return "", nil, err
	}

	return plaintext, key, nil
}

func (s *Service) ListAPIKeys(ctx context.Context, tc *TenantContext) ([]*types.APIKey, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.ListAPIKeys")
	defer span.End()

	return s.storage.ListAPIKeysByTenant(ctx, tc.TenantID())
}
