// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import "time"

// Store tracks request timestamps per key. Take prunes the key's window,
// admits the request if capacity remains and reports the resulting count.
// Implementations must be safe for concurrent use.
type Store interface {
	Take(key string, limit int, window time.Duration) (allowed bool, count int)
}

type LimiterInterface interface {
	Allow(clientIP, path string) Decision
}
