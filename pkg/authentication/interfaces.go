// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/climabill/climabill/internal/types"
	"github.com/climabill/climabill/pkg/token"
)

type ServiceInterface interface {
	Register(ctx context.Context, req *RegisterRequest) (*TokenPair, error)
	Login(ctx context.Context, tenantDomain, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	AddUser(ctx context.Context, tc *TenantContext, email, password, firstName, lastName string, role types.Role) (*types.User, error)

	ResolveAccessToken(ctx context.Context, raw string) (*TenantContext, error)
	ResolveAPIKey(ctx context.Context, raw string) (*TenantContext, error)

	CreateAPIKey(ctx context.Context, tc *TenantContext, name string, permissions []string) (string, *types.APIKey, error)
	ListAPIKeys(ctx context.Context, tc *TenantContext) ([]*types.APIKey, error)
}

// StorageInterface is the slice of the storage layer this package consumes.
type StorageInterface interface {
	CreateTenant(context.Context, *types.Tenant) (*types.Tenant, error)
	GetActiveTenantByID(context.Context, string) (*types.Tenant, error)
	GetActiveTenantByDomain(context.Context, string) (*types.Tenant, error)
	UpdateTenantUserCount(ctx context.Context, id string, delta int) error

	CreateUser(context.Context, *types.User) (*types.User, error)
	GetActiveUserByID(ctx context.Context, tenantID, id string) (*types.User, error)
	GetActiveUserByEmail(ctx context.Context, tenantID, email string) (*types.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	CountActiveUsers(ctx context.Context, tenantID string) (int64, error)

	CreateAPIKey(context.Context, *types.APIKey) (*types.APIKey, error)
	GetActiveAPIKeyByHash(ctx context.Context, keyHash string) (*types.APIKey, error)
	TouchAPIKey(ctx context.Context, id string) error
	ListAPIKeysByTenant(ctx context.Context, tenantID string) ([]*types.APIKey, error)
}

type TokenIssuerInterface interface {
	IssueAccessToken(ctx context.Context, user *types.User) (string, error)
	IssueRefreshToken(ctx context.Context, user *types.User) (string, error)
}

type TokenVerifierInterface interface {
	VerifyAccessToken(ctx context.Context, raw string) (*token.Claims, error)
	VerifyRefreshToken(ctx context.Context, raw string) (*token.Claims, error)
}
