// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package token

import (
	"context"

	"github.com/climabill/climabill/internal/types"
)

type TokenIssuerInterface interface {
	IssueAccessToken(ctx context.Context, user *types.User) (string, error)
	IssueRefreshToken(ctx context.Context, user *types.User) (string, error)
}

type TokenVerifierInterface interface {
	VerifyAccessToken(ctx context.Context, raw string) (*Claims, error)
	VerifyRefreshToken(ctx context.Context, raw string) (*Claims, error)
}
