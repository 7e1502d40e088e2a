// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/climabill/climabill/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetActiveTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetActiveTenantByDomain(ctx context.Context, domain string) (*types.Tenant, error)
	SetTenantStatus(ctx context.Context, id string, active bool) error
	UpdateTenantUserCount(ctx context.Context, id string, delta int) error

	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetActiveUserByID(ctx context.Context, tenantID, id string) (*types.User, error)
	GetActiveUserByEmail(ctx context.Context, tenantID, email string) (*types.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	CountActiveUsers(ctx context.Context, tenantID string) (int64, error)

	CreateAPIKey(ctx context.Context, k *types.APIKey) (*types.APIKey, error)
	GetActiveAPIKeyByHash(ctx context.Context, keyHash string) (*types.APIKey, error)
	TouchAPIKey(ctx context.Context, id string) error
	ListAPIKeysByTenant(ctx context.Context, tenantID string) ([]*types.APIKey, error)

	InsertAuditEntry(ctx context.Context, e *types.AuditEntry) error
}
