// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/climabill/climabill/internal/types"
)

type AuthorizerInterface interface {
	Can(role types.Role, resource Resource, action Action) bool
	RequireRole(role types.Role, resource Resource, action Action) error
}
