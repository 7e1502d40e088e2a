// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"errors"
	"testing"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

func testAuthorizer() *Authorizer {
	return NewAuthorizer(tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestCan(t *testing.T) {
	a := testAuthorizer()

	tests := []struct {
		name     string
		role     types.Role
		resource Resource
		action   Action
		want     bool
	}{
		{name: "ViewerReadsCompanies", role: types.RoleViewer, resource: ResourceCompanies, action: ActionRead, want: true},
		{name: "ViewerCannotWriteCompanies", role: types.RoleViewer, resource: ResourceCompanies, action: ActionWrite, want: false},
		{name: "AnalystWritesEmissions", role: types.RoleAnalyst, resource: ResourceEmissions, action: ActionWrite, want: true},
		{name: "AnalystCannotDeleteEmissions", role: types.RoleAnalyst, resource: ResourceEmissions, action: ActionDelete, want: false},
		{name: "ManagerDeletesEmissions", role: types.RoleManager, resource: ResourceEmissions, action: ActionDelete, want: true},
		{name: "ManagerCannotAdminUsers", role: types.RoleManager, resource: ResourceUsers, action: ActionAdmin, want: false},
		{name: "AdminDoesEverything", role: types.RoleAdmin, resource: ResourceUsers, action: ActionAdmin, want: true},
		{name: "ViewerCannotReadCompliance", role: types.RoleViewer, resource: ResourceCompliance, action: ActionRead, want: false},
		{name: "UnknownResourceDenied", role: types.RoleAdmin, resource: Resource("billing"), action: ActionRead, want: false},
		{name: "UnknownActionDenied", role: types.RoleAdmin, resource: ResourceCompanies, action: Action("export"), want: false},
		{name: "UnknownRoleDenied", role: types.Role("superuser"), resource: ResourceCompanies, action: ActionRead, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := a.Can(test.role, test.resource, test.action); got != test.want {
				t.Fatalf("Can(%q, %q, %q) = %v, want %v", test.role, test.resource, test.action, got, test.want)
			}
		})
	}
}

// Every resource the API serves must grant every CRUD action to some role, or
// a route is registered that denies all callers including admins.
func TestAdminCanActOnEveryResource(t *testing.T) {
	a := testAuthorizer()

	resources := []Resource{
		ResourceCompanies,
		ResourceEmissions,
		ResourceSuppliers,
		ResourceMarketplace,
		ResourceSupplyChain,
		ResourceCompliance,
		ResourceUsers,
	}
	actions := []Action{ActionRead, ActionWrite, ActionDelete, ActionAdmin}

	for _, resource := range resources {
		for _, action := range actions {
			if !a.Can(types.RoleAdmin, resource, action) {
				t.Errorf("admin cannot %s %s", action, resource)
			}
		}
	}
}

func TestRequireRole(t *testing.T) {
	a := testAuthorizer()

	if err := a.RequireRole(types.RoleAdmin, ResourceCompanies, ActionDelete); err != nil {
		t.Fatalf("expected grant, got %v", err)
	}

	err := a.RequireRole(types.RoleViewer, ResourceCompanies, ActionDelete)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
