// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits structured security events to the application log.
// It is the diagnostic channel for the audit pipeline: events land here even
// when the durable audit write fails.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) LoginSuccess(tenantID, userID string) {
	s.l.Info("security_event",
		zap.String("event", "LOGIN_SUCCESS"),
		zap.String("tenant_id", tenantID),
		zap.String("user_id", userID),
	)
}

func (s *SecurityLogger) LoginFailure(reason, tenantDomain string) {
	s.l.Warn("security_event",
		zap.String("event", "LOGIN_FAILURE"),
		zap.String("reason", reason),
		zap.String("tenant_domain", tenantDomain),
	)
}

func (s *SecurityLogger) AuthnFailure(clientIP, reason string) {
	s.l.Warn("security_event",
		zap.String("event", "AUTHENTICATION_FAILURE"),
		zap.String("client_ip", clientIP),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, permission string) {
	s.l.Warn("security_event",
		zap.String("event", "PERMISSION_DENIED"),
		zap.String("user_id", userID),
		zap.String("permission", permission),
	)
}

func (s *SecurityLogger) RateLimited(clientIP, class string, count, limit int) {
	s.l.Warn("security_event",
		zap.String("event", "RATE_LIMIT_EXCEEDED"),
		zap.String("client_ip", clientIP),
		zap.String("endpoint_class", class),
		zap.Int("current_requests", count),
		zap.Int("limit", limit),
	)
}

func (s *SecurityLogger) OversizedRequest(clientIP string, contentLength int64) {
	s.l.Warn("security_event",
		zap.String("event", "OVERSIZED_REQUEST"),
		zap.String("client_ip", clientIP),
		zap.Int64("content_length", contentLength),
	)
}

func (s *SecurityLogger) InvalidAPIKey(clientIP string) {
	s.l.Warn("security_event",
		zap.String("event", "INVALID_API_KEY"),
		zap.String("client_ip", clientIP),
	)
}

func (s *SecurityLogger) AuditWriteFailure(err error) {
	s.l.Error("security_event",
		zap.String("event", "AUDIT_WRITE_FAILURE"),
		zap.Error(err),
	)
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("security_event", zap.String("event", "SYSTEM_STARTUP"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("security_event", zap.String("event", "SYSTEM_SHUTDOWN"))
}
