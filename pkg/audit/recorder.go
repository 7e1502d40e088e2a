// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package audit writes the security event trail. Recording is best effort:
// a failed write is reported to the security logger and never propagated,
// so the audit path cannot take down request handling.
package audit

import (
	"context"
	"time"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// RequestMeta is the request envelope recorded with every event.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Path      string
	Method    string
	TenantID  string
	UserID    string
}

var _ RecorderInterface = (*Recorder)(nil)

type Recorder struct {
	storage AuditStorageInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewRecorder(storage AuditStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Recorder {
	r := new(Recorder)

	r.storage = storage

	r.logger = logger
	r.tracer = tracer
	r.monitor = monitor

	return r
}

func (r *Recorder) Record(ctx context.Context, event types.AuditEventType, severity string, meta RequestMeta, details map[string]interface{}) {
	ctx, span := r.tracer.Start(ctx, "audit.Recorder.Record")
	defer span.End()

	entry := &types.AuditEntry{
		Timestamp:     time.Now().UTC(),
		EventType:     event,
		Severity:      severity,
		ClientIP:      meta.ClientIP,
		UserAgent:     meta.UserAgent,
		RequestPath:   meta.Path,
		RequestMethod: meta.Method,
		TenantID:      meta.TenantID,
		UserID:        meta.UserID,
		Details:       details,
	}

	r.insert(ctx, entry)
}

func (r *Recorder) RecordAccess(ctx context.Context, meta RequestMeta, status int, latency time.Duration) {
	ctx, span := r.tracer.Start(ctx, "audit.Recorder.RecordAccess")
	defer span.End()

	ms := float64(latency) / float64(time.Millisecond)
	entry := &types.AuditEntry{
		Timestamp:      time.Now().UTC(),
		EventType:      types.EventAPIAccess,
		Severity:       SeverityInfo,
		ClientIP:       meta.ClientIP,
		UserAgent:      meta.UserAgent,
		RequestPath:    meta.Path,
		RequestMethod:  meta.Method,
		TenantID:       meta.TenantID,
		UserID:         meta.UserID,
		ResponseStatus: &status,
		ResponseTimeMS: &ms,
	}

	r.insert(ctx, entry)
}

func (r *Recorder) insert(ctx context.Context, entry *types.AuditEntry) {
	// The entry outlives the request: a client disconnect must not lose
	// the trail.
	err := r.storage.InsertAuditEntry(context.WithoutCancel(ctx), entry)
	if err != nil {
		r.logger.Security().AuditWriteFailure(err)
	}
}
