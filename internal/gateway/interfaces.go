// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gateway

import (
	"context"

	"github.com/climabill/climabill/internal/types"
)

// Principal is anything that carries an authenticated tenant identity.
// The gateway accepts nothing weaker: a raw tenant ID string cannot open
// a scope by accident.
type Principal interface {
	TenantID() string
}

type GatewayInterface interface {
	Scope(principal Principal) (ScopeInterface, error)
}

type ScopeInterface interface {
	FindOne(ctx context.Context, collection string, filter map[string]interface{}) (*types.Document, error)
	FindMany(ctx context.Context, collection string, filter map[string]interface{}, opts *FindOptions) ([]*types.Document, error)
	InsertOne(ctx context.Context, collection string, data map[string]interface{}) (*types.Document, error)
	InsertMany(ctx context.Context, collection string, data []map[string]interface{}) ([]*types.Document, error)
	UpdateOne(ctx context.Context, collection string, filter, update map[string]interface{}) (int64, error)
	UpdateMany(ctx context.Context, collection string, filter, update map[string]interface{}) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter map[string]interface{}) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter map[string]interface{}) (int64, error)
	Count(ctx context.Context, collection string, filter map[string]interface{}) (int64, error)
	Aggregate(ctx context.Context, collection string, pipeline []Stage) ([]map[string]interface{}, error)
}
