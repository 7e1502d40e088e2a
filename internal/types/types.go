// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Role is a user's role within a tenant. Roles form a total order used for
// hierarchical authorization checks: admin > manager > analyst > viewer.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

var roleRank = map[Role]int{
	RoleViewer:  0,
	RoleAnalyst: 1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of min.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(min Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	mr, ok := roleRank[min]
	if !ok {
		return false
	}
	return rr >= mr
}

// Plan is a tenant's subscription tier.
type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

type Tenant struct {
	ID                  string                 `db:"id" json:"id"`
	Name                string                 `db:"name" json:"name"`
	Domain              string                 `db:"domain" json:"domain"`
	Plan                Plan                   `db:"plan" json:"plan"`
	IsActive            bool                   `db:"is_active" json:"is_active"`
	MaxUsers            int                    `db:"max_users" json:"max_users"`
	CurrentUsers        int                    `db:"current_users" json:"current_users"`
	FeaturesEnabled     []string               `db:"features_enabled" json:"features_enabled"`
	Settings            map[string]interface{} `db:"settings" json:"settings"`
	CreatedAt           time.Time              `db:"created_at" json:"created_at"`
	SubscriptionExpires *time.Time             `db:"subscription_expires" json:"subscription_expires,omitempty"`
}

type User struct {
	ID             string                 `db:"id" json:"id"`
	TenantID       string                 `db:"tenant_id" json:"tenant_id"`
	Email          string                 `db:"email" json:"email"`
	HashedPassword string                 `db:"hashed_password" json:"-"`
	FirstName      string                 `db:"first_name" json:"first_name"`
	LastName       string                 `db:"last_name" json:"last_name"`
	Role           Role                   `db:"role" json:"role"`
	IsActive       bool                   `db:"is_active" json:"is_active"`
	IsVerified     bool                   `db:"is_verified" json:"is_verified"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	LastLogin      *time.Time             `db:"last_login" json:"last_login,omitempty"`
	Preferences    map[string]interface{} `db:"preferences" json:"preferences"`
}

type APIKey struct {
	ID          string     `db:"id" json:"id"`
	TenantID    string     `db:"tenant_id" json:"tenant_id"`
	Name        string     `db:"name" json:"name"`
	KeyHash     string     `db:"key_hash" json:"-"`
	Permissions []string   `db:"permissions" json:"permissions"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	LastUsed    *time.Time `db:"last_used" json:"last_used,omitempty"`
	UsageCount  int64      `db:"usage_count" json:"usage_count"`
}

// AuditEventType enumerates security-relevant events recorded in the audit trail.
type AuditEventType string

const (
	EventLoginSuccess      AuditEventType = "LOGIN_SUCCESS"
	EventLoginFailure      AuditEventType = "LOGIN_FAILURE"
	EventRateLimitExceeded AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventOversizedRequest  AuditEventType = "OVERSIZED_REQUEST"
	EventInvalidAPIKey     AuditEventType = "INVALID_API_KEY"
	EventAPIAccess         AuditEventType = "API_ACCESS"
	EventPermissionDenied  AuditEventType = "PERMISSION_DENIED"
	EventSuspiciousInput   AuditEventType = "SUSPICIOUS_INPUT"
)

// AuditEntry is an immutable audit trail record. The application appends
// entries and never mutates or deletes them.
type AuditEntry struct {
	ID             string                 `db:"id" json:"id"`
	Timestamp      time.Time              `db:"timestamp" json:"timestamp"`
	EventType      AuditEventType         `db:"event_type" json:"event_type"`
	Severity       string                 `db:"severity" json:"severity"`
	ClientIP       string                 `db:"client_ip" json:"client_ip"`
	UserAgent      string                 `db:"user_agent" json:"user_agent"`
	RequestPath    string                 `db:"request_path" json:"request_path"`
	RequestMethod  string                 `db:"request_method" json:"request_method"`
	TenantID       string                 `db:"tenant_id" json:"tenant_id,omitempty"`
	UserID         string                 `db:"user_id" json:"user_id,omitempty"`
	ResponseStatus *int                   `db:"response_status" json:"response_status,omitempty"`
	ResponseTimeMS *float64               `db:"response_time_ms" json:"response_time_ms,omitempty"`
	Details        map[string]interface{} `db:"details" json:"details"`
}

// Document is a tenant-scoped business record: a schemaless payload stored in
// a shared collection with a tenant discriminator stamped at insertion.
type Document struct {
	ID         string                 `db:"id" json:"id"`
	Collection string                 `db:"collection" json:"collection"`
	TenantID   string                 `db:"tenant_id" json:"tenant_id"`
	Data       map[string]interface{} `db:"data" json:"data"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}
