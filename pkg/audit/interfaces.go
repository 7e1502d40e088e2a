// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"time"

	"github.com/climabill/climabill/internal/types"
)

type RecorderInterface interface {
	Record(ctx context.Context, event types.AuditEventType, severity string, meta RequestMeta, details map[string]interface{})
	RecordAccess(ctx context.Context, meta RequestMeta, status int, latency time.Duration)
}

type AuditStorageInterface interface {
	InsertAuditEntry(context.Context, *types.AuditEntry) error
}
