// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/climabill/climabill/internal/types"
)

// TenantContext is the resolved identity of a request: which tenant it acts
// for, which principal authenticated and how. It is built by the resolver
// middleware and is the only accepted way to open a gateway scope.
type TenantContext struct {
	tenant *types.Tenant

	userID     string
	email      string
	role       types.Role
	authMethod string
}

const (
	MethodJWT    = "jwt"
	MethodAPIKey = "api_key"
)

func NewTenantContext(tenant *types.Tenant, userID, email string, role types.Role, authMethod string) *TenantContext {
	return &TenantContext{
		tenant:     tenant,
		userID:     userID,
		email:      email,
		role:       role,
		authMethod: authMethod,
	}
}

func (c *TenantContext) TenantID() string {
	return c.tenant.ID
}

func (c *TenantContext) Tenant() *types.Tenant {
	return c.tenant
}

func (c *TenantContext) UserID() string {
	return c.userID
}

func (c *TenantContext) Email() string {
	return c.email
}

func (c *TenantContext) Role() types.Role {
	return c.role
}

func (c *TenantContext) AuthMethod() string {
	return c.authMethod
}

// HasFeature reports whether the tenant's plan enables a feature.
func (c *TenantContext) HasFeature(feature string) bool {
	for _, f := range c.tenant.FeaturesEnabled {
		if f == feature {
			return true
		}
	}
	return false
}

// Private key type to avoid collisions.
type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenantContext returns a new context carrying the resolved identity.
func WithTenantContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// GetTenantContext retrieves the resolved identity from the context.
// Returns nil and false on requests that never passed the resolver.
func GetTenantContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(*TenantContext)
	return tc, ok
}
