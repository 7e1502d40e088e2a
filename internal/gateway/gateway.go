// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package gateway is the single query path to tenant-scoped business records.
// Every statement it emits carries the tenant discriminator of the principal
// that opened the scope; callers never assemble tenant filters themselves.
package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/climabill/climabill/internal/db"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

var (
	ErrMissingTenant     = errors.New("principal has no tenant")
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

var (
	collectionPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
	sortFieldPattern  = regexp.MustCompile(`^[a-zA-Z0-9_.]{1,128}$`)
)

var _ GatewayInterface = (*Gateway)(nil)
var _ ScopeInterface = (*Scope)(nil)

type Gateway struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewGateway(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Gateway {
	g := new(Gateway)

	g.db = c

	g.logger = logger
	g.tracer = tracer
	g.monitor = monitor

	return g
}

// Scope opens a tenant-confined view of the document store. It is the only
// way to reach gateway operations, and it refuses principals without a
// tenant identity.
func (g *Gateway) Scope(principal Principal) (ScopeInterface, error) {
	if principal == nil || principal.TenantID() == "" {
		return nil, ErrMissingTenant
	}

	return &Scope{gateway: g, tenantID: principal.TenantID()}, nil
}

type Scope struct {
	gateway  *Gateway
	tenantID string
}

// SortField orders results by a column of the envelope ("created_at") or,
// for any other name, by the corresponding key of the document payload.
type SortField struct {
	Field      string
	Descending bool
}

type FindOptions struct {
	Limit uint64
	Skip  uint64
	Sort  []SortField
}

// scopedWhere is the mandatory predicate of every statement: tenant column
// equality first, then collection, then the caller's filter as JSONB
// containment.
func (s *Scope) scopedWhere(collection string, filter map[string]interface{}) ([]sq.Sqlizer, error) {
	if !collectionPattern.MatchString(collection) {
		return nil, fmt.Errorf("%q: %w", collection, ErrInvalidCollection)
	}

	preds := []sq.Sqlizer{
		sq.Eq{"tenant_id": s.tenantID},
		sq.Eq{"collection": collection},
	}

	if len(filter) > 0 {
		payload, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filter: %w", err)
		}
		preds = append(preds, sq.Expr("data @> ?", payload))
	}

	return preds, nil
}

func (s *Scope) selectStatement(ctx context.Context, collection string, filter map[string]interface{}) (sq.SelectBuilder, error) {
	preds, err := s.scopedWhere(collection, filter)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	stmt := s.gateway.db.Statement(ctx).
		Select("id", "collection", "tenant_id", "data", "created_at").
		From("documents")
	for _, p := range preds {
		stmt = stmt.Where(p)
	}

	return stmt, nil
}

func applySort(stmt sq.SelectBuilder, sort []SortField) (sq.SelectBuilder, error) {
	for _, sf := range sort {
		if !sortFieldPattern.MatchString(sf.Field) {
			return stmt, fmt.Errorf("%q: %w", sf.Field, ErrInvalidSortField)
		}
		dir := "ASC"
		if sf.Descending {
			dir = "DESC"
		}
		if sf.Field == "created_at" {
			stmt = stmt.OrderBy("created_at " + dir)
		} else {
			// Field names are validated above; values stay parameterized
			// through the containment predicate.
			stmt = stmt.OrderBy(fmt.Sprintf("data->>'%s' %s", sf.Field, dir))
		}
	}

	return stmt, nil
}

func scanDocuments(rows *sql.Rows) ([]*types.Document, error) {
	var docs []*types.Document
	for rows.Next() {
		var (
			doc types.Document
			raw []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Collection, &doc.TenantID, &raw, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := json.Unmarshal(raw, &doc.Data); err != nil {
			return nil, fmt.Errorf("failed to decode document payload: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

func (s *Scope) FindOne(ctx context.Context, collection string, filter map[string]interface{}) (*types.Document, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.FindOne")
	defer span.End()

	stmt, err := s.selectStatement(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	var (
		doc types.Document
		raw []byte
	)
	err = stmt.OrderBy("created_at ASC").Limit(1).
		QueryRowContext(ctx).
		Scan(&doc.ID, &doc.Collection, &doc.TenantID, &raw, &doc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to decode document payload: %w", err)
	}

	return &doc, nil
}

func (s *Scope) FindMany(ctx context.Context, collection string, filter map[string]interface{}, opts *FindOptions) ([]*types.Document, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.FindMany")
	defer span.End()

	stmt, err := s.selectStatement(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	if opts != nil {
		stmt, err = applySort(stmt, opts.Sort)
		if err != nil {
			return nil, err
		}
		if opts.Limit > 0 {
			stmt = stmt.Limit(opts.Limit)
		}
		if opts.Skip > 0 {
			stmt = stmt.Offset(opts.Skip)
		}
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (s *Scope) InsertOne(ctx context.Context, collection string, data map[string]interface{}) (*types.Document, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.InsertOne")
	defer span.End()

	docs, err := s.InsertMany(ctx, collection, []map[string]interface{}{data})
	if err != nil {
		return nil, err
	}

	return docs[0], nil
}

func (s *Scope) InsertMany(ctx context.Context, collection string, data []map[string]interface{}) ([]*types.Document, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.InsertMany")
	defer span.End()

	if !collectionPattern.MatchString(collection) {
		return nil, fmt.Errorf("%q: %w", collection, ErrInvalidCollection)
	}
	if len(data) == 0 {
		return nil, nil
	}

	stmt := s.gateway.db.Statement(ctx).
		Insert("documents").
		Columns("id", "collection", "tenant_id", "data")

	docs := make([]*types.Document, 0, len(data))
	for _, payload := range data {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate document ID: %w", err)
		}

		// The discriminator is stamped server-side. A tenant_id smuggled
		// inside the payload is discarded rather than trusted.
		clean := make(map[string]interface{}, len(payload))
		for k, v := range payload {
			if k == "tenant_id" || k == "id" {
				continue
			}
			clean[k] = v
		}

		raw, err := json.Marshal(clean)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document payload: %w", err)
		}

		stmt = stmt.Values(id.String(), collection, s.tenantID, raw)
		docs = append(docs, &types.Document{
			ID:         id.String(),
			Collection: collection,
			TenantID:   s.tenantID,
			Data:       clean,
		})
	}

	rows, err := stmt.Suffix("RETURNING created_at").QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to insert documents: %w", err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&docs[i].CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inserted document: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inserted documents: %w", err)
	}

	return docs, nil
}

func (s *Scope) UpdateOne(ctx context.Context, collection string, filter, update map[string]interface{}) (int64, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.UpdateOne")
	defer span.End()

	return s.update(ctx, collection, filter, update, true)
}

func (s *Scope) UpdateMany(ctx context.Context, collection string, filter, update map[string]interface{}) (int64, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.UpdateMany")
	defer span.End()

	return s.update(ctx, collection, filter, update, false)
}

func (s *Scope) update(ctx context.Context, collection string, filter, update map[string]interface{}, single bool) (int64, error) {
	preds, err := s.scopedWhere(collection, filter)
	if err != nil {
		return 0, err
	}

	delete(update, "tenant_id")
	delete(update, "id")
	payload, err := json.Marshal(update)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal update: %w", err)
	}

	stmt := s.gateway.db.Statement(ctx).
		Update("documents").
		Set("data", sq.Expr("data || ?::jsonb", payload))

	if single {
		stmt = stmt.Where(sq.Expr("id = (?)", firstMatching(preds)))
	} else {
		for _, p := range preds {
			stmt = stmt.Where(p)
		}
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to update documents: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

func (s *Scope) DeleteOne(ctx context.Context, collection string, filter map[string]interface{}) (int64, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.DeleteOne")
	defer span.End()

	return s.delete(ctx, collection, filter, true)
}

func (s *Scope) DeleteMany(ctx context.Context, collection string, filter map[string]interface{}) (int64, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.DeleteMany")
	defer span.End()

	return s.delete(ctx, collection, filter, false)
}

func (s *Scope) delete(ctx context.Context, collection string, filter map[string]interface{}, single bool) (int64, error) {
	preds, err := s.scopedWhere(collection, filter)
	if err != nil {
		return 0, err
	}

	stmt := s.gateway.db.Statement(ctx).Delete("documents")
	if single {
		stmt = stmt.Where(sq.Expr("id = (?)", firstMatching(preds)))
	} else {
		for _, p := range preds {
			stmt = stmt.Where(p)
		}
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

// firstMatching selects the oldest matching row ID so that the *One variants
// touch at most one record. Built with the default question placeholders;
// dollar renumbering happens when the enclosing statement renders.
func firstMatching(preds []sq.Sqlizer) sq.SelectBuilder {
	stmt := sq.Select("id").From("documents")
	for _, p := range preds {
		stmt = stmt.Where(p)
	}
	return stmt.OrderBy("created_at ASC").Limit(1)
}

func (s *Scope) Count(ctx context.Context, collection string, filter map[string]interface{}) (int64, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.Count")
	defer span.End()

	preds, err := s.scopedWhere(collection, filter)
	if err != nil {
		return 0, err
	}

	stmt := s.gateway.db.Statement(ctx).Select("COUNT(*)").From("documents")
	for _, p := range preds {
		stmt = stmt.Where(p)
	}

	var count int64
	if err := stmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

// Aggregate fetches the tenant-confined row set and evaluates the pipeline
// over it in memory. The tenant predicate is part of the fetch, so no stage
// ever observes another tenant's rows, whatever the pipeline does.
func (s *Scope) Aggregate(ctx context.Context, collection string, pipeline []Stage) ([]map[string]interface{}, error) {
	ctx, span := s.gateway.tracer.Start(ctx, "gateway.Scope.Aggregate")
	defer span.End()

	docs, err := s.FindMany(ctx, collection, nil, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		row := make(map[string]interface{}, len(doc.Data)+2)
		for k, v := range doc.Data {
			row[k] = v
		}
		row["id"] = doc.ID
		row["created_at"] = doc.CreatedAt
		rows = append(rows, row)
	}

	return evalPipeline(rows, pipeline)
}
