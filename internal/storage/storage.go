// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/climabill/climabill/internal/db"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func marshalJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	features, err := marshalJSON(t.FeaturesEnabled)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal features: %w", err)
	}
	settings, err := marshalJSON(t.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	created := *t
	created.ID = id.String()
	created.IsActive = true

	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "domain", "plan", "is_active", "max_users", "current_users", "features_enabled", "settings", "subscription_expires").
		Values(created.ID, t.Name, t.Domain, string(t.Plan), true, t.MaxUsers, 0, features, settings, t.SubscriptionExpires).
		Suffix("RETURNING created_at").
		QueryRowContext(ctx).
		Scan(&created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("tenant domain %q: %w", t.Domain, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return &created, nil
}

func (s *Storage) getActiveTenant(ctx context.Context, pred sq.Eq) (*types.Tenant, error) {
	var (
		t        types.Tenant
		plan     string
		features []byte
		settings []byte
		expires  sql.NullTime
	)

	pred["is_active"] = true
	err := s.db.Statement(ctx).
		Select("id", "name", "domain", "plan", "is_active", "max_users", "current_users", "features_enabled", "settings", "created_at", "subscription_expires").
		From("tenants").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.Domain, &plan, &t.IsActive, &t.MaxUsers, &t.CurrentUsers, &features, &settings, &t.CreatedAt, &expires)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	t.Plan = types.Plan(plan)
	if expires.Valid {
		t.SubscriptionExpires = &expires.Time
	}
	if err := json.Unmarshal(features, &t.FeaturesEnabled); err != nil {
		return nil, fmt.Errorf("failed to decode tenant features: %w", err)
	}
	if err := json.Unmarshal(settings, &t.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
	}

	return &t, nil
}

func (s *Storage) GetActiveTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveTenantByID")
	defer span.End()

	return s.getActiveTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetActiveTenantByDomain(ctx context.Context, domain string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveTenantByDomain")
	defer span.End()

	return s.getActiveTenant(ctx, sq.Eq{"domain": domain})
}

func (s *Storage) SetTenantStatus(ctx context.Context, id string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) UpdateTenantUserCount(ctx context.Context, id string, delta int) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenantUserCount")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("tenants").
		Set("current_users", sq.Expr("current_users + ?", delta)).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update tenant user count: %w", err)
	}

	return nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	prefs, err := marshalJSON(u.Preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	created := *u
	created.ID = id.String()
	created.IsActive = true

	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "tenant_id", "email", "hashed_password", "first_name", "last_name", "role", "is_active", "is_verified", "preferences").
		Values(created.ID, u.TenantID, u.Email, u.HashedPassword, u.FirstName, u.LastName, string(u.Role), true, u.IsVerified, prefs).
		Suffix("RETURNING created_at").
		QueryRowContext(ctx).
		Scan(&created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user %q in tenant %s: %w", u.Email, u.TenantID, ErrDuplicateKey)
		}
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("tenant %s: %w", u.TenantID, ErrForeignKeyViolation)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

func (s *Storage) getActiveUser(ctx context.Context, pred sq.Eq) (*types.User, error) {
	var (
		u         types.User
		role      string
		lastLogin sql.NullTime
		prefs     []byte
	)

	pred["is_active"] = true
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "email", "hashed_password", "first_name", "last_name", "role", "is_active", "is_verified", "created_at", "last_login", "preferences").
		From("users").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.TenantID, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName, &role, &u.IsActive, &u.IsVerified, &u.CreatedAt, &lastLogin, &prefs)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Role = types.Role(role)
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode user preferences: %w", err)
	}

	return &u, nil
}

func (s *Storage) GetActiveUserByID(ctx context.Context, tenantID, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveUserByID")
	defer span.End()

	return s.getActiveUser(ctx, sq.Eq{"id": id, "tenant_id": tenantID})
}

func (s *Storage) GetActiveUserByEmail(ctx context.Context, tenantID, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveUserByEmail")
	defer span.End()

	return s.getActiveUser(ctx, sq.Eq{"email": email, "tenant_id": tenantID})
}

func (s *Storage) UpdateLastLogin(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateLastLogin")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("users").
		Set("last_login", time.Now().UTC()).
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

func (s *Storage) CountActiveUsers(ctx context.Context, tenantID string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountActiveUsers")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"tenant_id": tenantID, "is_active": true}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (s *Storage) CreateAPIKey(ctx context.Context, k *types.APIKey) (*types.APIKey, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAPIKey")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key ID: %w", err)
	}

	perms, err := marshalJSON(k.Permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal permissions: %w", err)
	}

	created := *k
	created.ID = id.String()
	created.IsActive = true

	err = s.db.Statement(ctx).
		Insert("api_keys").
		Columns("id", "tenant_id", "name", "key_hash", "permissions", "is_active", "created_by", "usage_count").
		Values(created.ID, k.TenantID, k.Name, k.KeyHash, perms, true, k.CreatedBy, 0).
		Suffix("RETURNING created_at").
		QueryRowContext(ctx).
		Scan(&created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert API key: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetActiveAPIKeyByHash(ctx context.Context, keyHash string) (*types.APIKey, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveAPIKeyByHash")
	defer span.End()

	var (
		k        types.APIKey
		perms    []byte
		lastUsed sql.NullTime
	)

	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "key_hash", "permissions", "is_active", "created_by", "created_at", "last_used", "usage_count").
		From("api_keys").
		Where(sq.Eq{"key_hash": keyHash, "is_active": true}).
		QueryRowContext(ctx).
		Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &perms, &k.IsActive, &k.CreatedBy, &k.CreatedAt, &lastUsed, &k.UsageCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	if lastUsed.Valid {
		k.LastUsed = &lastUsed.Time
	}
	if err := json.Unmarshal(perms, &k.Permissions); err != nil {
		return nil, fmt.Errorf("failed to decode API key permissions: %w", err)
	}

	return &k, nil
}

func (s *Storage) TouchAPIKey(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.TouchAPIKey")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("api_keys").
		Set("last_used", time.Now().UTC()).
		Set("usage_count", sq.Expr("usage_count + 1")).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update API key usage: %w", err)
	}

	return nil
}

func (s *Storage) ListAPIKeysByTenant(ctx context.Context, tenantID string) ([]*types.APIKey, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAPIKeysByTenant")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "permissions", "is_active", "created_by", "created_at", "last_used", "usage_count").
		From("api_keys").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	defer rows.Close()

	var keys []*types.APIKey
	for rows.Next() {
		var (
			k        types.APIKey
			perms    []byte
			lastUsed sql.NullTime
		)
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &perms, &k.IsActive, &k.CreatedBy, &k.CreatedAt, &lastUsed, &k.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan API key: %w", err)
		}
		if lastUsed.Valid {
			k.LastUsed = &lastUsed.Time
		}
		if err := json.Unmarshal(perms, &k.Permissions); err != nil {
			return nil, fmt.Errorf("failed to decode API key permissions: %w", err)
		}
		keys = append(keys, &k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating API key rows: %w", err)
	}

	return keys, nil
}

func (s *Storage) InsertAuditEntry(ctx context.Context, e *types.AuditEntry) error {
	ctx, span := s.tracer.Start(ctx, "storage.InsertAuditEntry")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit entry ID: %w", err)
	}

	details, err := marshalJSON(e.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = s.db.Statement(ctx).
		Insert("audit_logs").
		Columns("id", "timestamp", "event_type", "severity", "client_ip", "user_agent", "request_path", "request_method", "tenant_id", "user_id", "response_status", "response_time_ms", "details").
		Values(id.String(), ts, string(e.EventType), e.Severity, e.ClientIP, e.UserAgent, e.RequestPath, e.RequestMethod, nullString(e.TenantID), nullString(e.UserID), e.ResponseStatus, e.ResponseTimeMS, details).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
