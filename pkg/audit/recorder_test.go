// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_storage.go -source=./interfaces.go AuditStorageInterface

func testRecorder(storage AuditStorageInterface) *Recorder {
	return NewRecorder(storage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestRecordInsertsEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockAuditStorageInterface(ctrl)
	recorder := testRecorder(mockStorage)

	meta := RequestMeta{
		ClientIP: "203.0.113.9",
		Path:     "/api/auth/login",
		Method:   "POST",
		TenantID: "tenant-1",
	}

	mockStorage.EXPECT().
		InsertAuditEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, entry *types.AuditEntry) error {
			if entry.EventType != types.EventLoginFailure {
				t.Errorf("wrong event type: %v", entry.EventType)
			}
			if entry.Severity != SeverityWarning {
				t.Errorf("wrong severity: %v", entry.Severity)
			}
			if entry.ClientIP != "203.0.113.9" || entry.TenantID != "tenant-1" {
				t.Errorf("request meta not carried over: %+v", entry)
			}
			if entry.Timestamp.IsZero() {
				t.Error("timestamp not stamped")
			}
			return nil
		})

	recorder.Record(context.Background(), types.EventLoginFailure, SeverityWarning, meta, map[string]interface{}{"reason": "bad password"})
}

func TestRecordAccessCarriesStatusAndLatency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockAuditStorageInterface(ctrl)
	recorder := testRecorder(mockStorage)

	mockStorage.EXPECT().
		InsertAuditEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, entry *types.AuditEntry) error {
			if entry.EventType != types.EventAPIAccess {
				t.Errorf("wrong event type: %v", entry.EventType)
			}
			if entry.ResponseStatus == nil || *entry.ResponseStatus != 200 {
				t.Errorf("missing response status: %+v", entry.ResponseStatus)
			}
			if entry.ResponseTimeMS == nil || *entry.ResponseTimeMS != 250 {
				t.Errorf("wrong latency: %+v", entry.ResponseTimeMS)
			}
			return nil
		})

	recorder.RecordAccess(context.Background(), RequestMeta{Path: "/api/companies"}, 200, 250*time.Millisecond)
}

func TestRecordSwallowsStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockAuditStorageInterface(ctrl)
	recorder := testRecorder(mockStorage)

	mockStorage.EXPECT().
		InsertAuditEntry(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	// Must not panic or surface the error.
	recorder.Record(context.Background(), types.EventSuspiciousInput, SeverityError, RequestMeta{}, nil)
}

func TestRecordOutlivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockAuditStorageInterface(ctrl)
	recorder := testRecorder(mockStorage)

	mockStorage.EXPECT().
		InsertAuditEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, entry *types.AuditEntry) error {
			if ctx.Err() != nil {
				t.Errorf("audit write saw a dead context: %v", ctx.Err())
			}
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder.Record(ctx, types.EventRateLimitExceeded, SeverityWarning, RequestMeta{}, nil)
}
