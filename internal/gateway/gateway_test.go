// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gateway

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
)

type testPrincipal struct {
	tenant string
}

func (p testPrincipal) TenantID() string {
	return p.tenant
}

func TestScopeRequiresTenant(t *testing.T) {
	g := NewGateway(nil, nil, nil, nil)

	for _, tc := range []struct {
		name      string
		principal Principal
	}{
		{name: "NilPrincipal", principal: nil},
		{name: "EmptyTenant", principal: testPrincipal{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Scope(tc.principal); !errors.Is(err, ErrMissingTenant) {
				t.Fatalf("expected ErrMissingTenant, got %v", err)
			}
		})
	}
}

func TestScopedWhereAlwaysCarriesTenant(t *testing.T) {
	s := &Scope{tenantID: "tenant-a"}

	for _, tc := range []struct {
		name   string
		filter map[string]interface{}
	}{
		{name: "NoFilter", filter: nil},
		{name: "EmptyFilter", filter: map[string]interface{}{}},
		{name: "CallerFilter", filter: map[string]interface{}{"status": "active"}},
		{name: "SmuggledTenant", filter: map[string]interface{}{"tenant_id": "tenant-b"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			preds, err := s.scopedWhere("companies", tc.filter)
			if err != nil {
				t.Fatal(err)
			}

			stmt := sq.Select("id").From("documents")
			for _, p := range preds {
				stmt = stmt.Where(p)
			}
			query, args, err := stmt.ToSql()
			if err != nil {
				t.Fatal(err)
			}

			if !strings.Contains(query, "tenant_id = ?") {
				t.Fatalf("query missing tenant predicate: %s", query)
			}
			if args[0] != "tenant-a" {
				t.Fatalf("first argument should be the scope tenant, got %v", args[0])
			}
		})
	}
}

func TestScopedWhereFilterIsContainment(t *testing.T) {
	s := &Scope{tenantID: "tenant-a"}

	preds, err := s.scopedWhere("emissions", map[string]interface{}{"scope": float64(2)})
	if err != nil {
		t.Fatal(err)
	}

	stmt := sq.Select("id").From("documents")
	for _, p := range preds {
		stmt = stmt.Where(p)
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(query, "data @> ?") {
		t.Fatalf("query missing containment predicate: %s", query)
	}
	if string(args[len(args)-1].([]byte)) != `{"scope":2}` {
		t.Fatalf("unexpected containment payload: %s", args[len(args)-1])
	}
}

func TestScopedWhereRejectsBadCollections(t *testing.T) {
	s := &Scope{tenantID: "tenant-a"}

	for _, collection := range []string{"", "Companies", "docs; DROP TABLE documents", "a b"} {
		if _, err := s.scopedWhere(collection, nil); !errors.Is(err, ErrInvalidCollection) {
			t.Fatalf("collection %q: expected ErrInvalidCollection, got %v", collection, err)
		}
	}
}

func TestApplySortValidatesFields(t *testing.T) {
	stmt := sq.Select("id").From("documents")

	if _, err := applySort(stmt, []SortField{{Field: "name'; --"}}); !errors.Is(err, ErrInvalidSortField) {
		t.Fatalf("expected ErrInvalidSortField, got %v", err)
	}

	sorted, err := applySort(stmt, []SortField{{Field: "created_at", Descending: true}, {Field: "name"}})
	if err != nil {
		t.Fatal(err)
	}
	query, _, err := sorted.ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC, data->>'name' ASC") {
		t.Fatalf("unexpected order clause: %s", query)
	}
}

var errQueryRecorded = errors.New("query recorded")

// recordingRunner captures the SQL a statement would execute and stops there.
type recordingRunner struct {
	query string
	args  []interface{}
}

func (r *recordingRunner) Exec(query string, args ...interface{}) (sql.Result, error) {
	return r.ExecContext(context.Background(), query, args...)
}

func (r *recordingRunner) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return r.QueryContext(context.Background(), query, args...)
}

func (r *recordingRunner) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.query = query
	r.args = args
	return nil, errQueryRecorded
}

func (r *recordingRunner) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	r.query = query
	r.args = args
	return nil, errQueryRecorded
}

// recordingClient satisfies db.DBClientInterface over a recordingRunner.
type recordingClient struct {
	runner *recordingRunner
}

func (c *recordingClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(c.runner)
}

func (c *recordingClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *recordingClient) Close() {}

// A pipeline that projects away tenant_id must not loosen the row fetch: the
// tenant predicate is part of the SQL, not of any stage.
func TestAggregateFetchIsTenantConfined(t *testing.T) {
	runner := new(recordingRunner)
	g := NewGateway(&recordingClient{runner: runner},
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())

	scope, err := g.Scope(testPrincipal{tenant: "tenant-a"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = scope.Aggregate(context.Background(), "emissions", []Stage{
		Project("category", "amount"),
		Sort("amount", true),
	})
	if !errors.Is(err, errQueryRecorded) {
		t.Fatalf("expected the recorded fetch error, got %v", err)
	}

	if !strings.Contains(runner.query, "tenant_id = $1") {
		t.Fatalf("aggregate fetch missing tenant predicate: %s", runner.query)
	}
	if len(runner.args) == 0 || runner.args[0] != "tenant-a" {
		t.Fatalf("first argument should be the scope tenant, got %v", runner.args)
	}
}

func TestFirstMatchingRendersNestedSelect(t *testing.T) {
	s := &Scope{tenantID: "tenant-a"}
	preds, err := s.scopedWhere("suppliers", nil)
	if err != nil {
		t.Fatal(err)
	}

	stmt := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Delete("documents").
		Where(sq.Expr("id = (?)", firstMatching(preds)))

	query, args, err := stmt.ToSql()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(query, "id = (SELECT id FROM documents") {
		t.Fatalf("expected nested select, got: %s", query)
	}
	if !strings.Contains(query, "LIMIT 1") {
		t.Fatalf("expected single-row select, got: %s", query)
	}
	if !strings.Contains(query, "$1") {
		t.Fatalf("expected dollar placeholders, got: %s", query)
	}
	if args[0] != "tenant-a" {
		t.Fatalf("first argument should be the scope tenant, got %v", args[0])
	}
}
