// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantInactive     = errors.New("tenant is not active")
	ErrUserLimitReached   = errors.New("tenant user limit reached")
	ErrDuplicateTenant    = errors.New("tenant domain already registered")
	ErrDuplicateUser      = errors.New("user already registered")
	ErrInvalidAPIKey      = errors.New("invalid API key")
)
