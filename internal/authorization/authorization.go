// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package authorization answers whether a role may act on a resource. The
// permission surface is a closed table: an unknown resource or action is a
// denial, never a default grant.
package authorization

import (
	"errors"
	"fmt"

	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/internal/types"
)

var ErrPermissionDenied = errors.New("permission denied")

type Resource string

const (
	ResourceCompanies   Resource = "companies"
	ResourceEmissions   Resource = "emissions"
	ResourceSuppliers   Resource = "suppliers"
	ResourceMarketplace Resource = "marketplace"
	ResourceSupplyChain Resource = "supply_chain"
	ResourceCompliance  Resource = "compliance"
	ResourceUsers       Resource = "users"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionAdmin  Action = "admin"
)

type permission struct {
	resource Resource
	action   Action
}

// minimumRole is the complete permission table. Every grantable pair appears
// here with the weakest role allowed to perform it.
var minimumRole = map[permission]types.Role{
	{ResourceCompanies, ActionRead}:     types.RoleViewer,
	{ResourceCompanies, ActionWrite}:    types.RoleManager,
	{ResourceCompanies, ActionDelete}:   types.RoleAdmin,
	{ResourceCompanies, ActionAdmin}:    types.RoleAdmin,
	{ResourceEmissions, ActionRead}:     types.RoleViewer,
	{ResourceEmissions, ActionWrite}:    types.RoleAnalyst,
	{ResourceEmissions, ActionDelete}:   types.RoleManager,
	{ResourceEmissions, ActionAdmin}:    types.RoleAdmin,
	{ResourceSuppliers, ActionRead}:     types.RoleViewer,
	{ResourceSuppliers, ActionWrite}:    types.RoleAnalyst,
	{ResourceSuppliers, ActionDelete}:   types.RoleManager,
	{ResourceSuppliers, ActionAdmin}:    types.RoleAdmin,
	{ResourceMarketplace, ActionRead}:   types.RoleViewer,
	{ResourceMarketplace, ActionWrite}:  types.RoleManager,
	{ResourceMarketplace, ActionDelete}: types.RoleAdmin,
	{ResourceMarketplace, ActionAdmin}:  types.RoleAdmin,
	{ResourceSupplyChain, ActionRead}:   types.RoleViewer,
	{ResourceSupplyChain, ActionWrite}:  types.RoleAnalyst,
	{ResourceSupplyChain, ActionDelete}: types.RoleAdmin,
	{ResourceSupplyChain, ActionAdmin}:  types.RoleAdmin,
	{ResourceCompliance, ActionRead}:    types.RoleAnalyst,
	{ResourceCompliance, ActionWrite}:   types.RoleManager,
	{ResourceCompliance, ActionDelete}:  types.RoleAdmin,
	{ResourceCompliance, ActionAdmin}:   types.RoleAdmin,
	{ResourceUsers, ActionRead}:         types.RoleManager,
	{ResourceUsers, ActionWrite}:        types.RoleAdmin,
	{ResourceUsers, ActionDelete}:       types.RoleAdmin,
	{ResourceUsers, ActionAdmin}:        types.RoleAdmin,
}

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.logger = logger
	a.tracer = tracer
	a.monitor = monitor

	return a
}

func (a *Authorizer) Can(role types.Role, resource Resource, action Action) bool {
	min, ok := minimumRole[permission{resource, action}]
	if !ok {
		return false
	}

	return role.AtLeast(min)
}

func (a *Authorizer) RequireRole(role types.Role, resource Resource, action Action) error {
	if a.Can(role, resource, action) {
		return nil
	}

	return fmt.Errorf("role %q may not %s %s: %w", role, action, resource, ErrPermissionDenied)
}
