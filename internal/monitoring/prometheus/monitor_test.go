// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/climabill/climabill/internal/logging"
)

func TestSetDependencyAvailability(t *testing.T) {
	m := NewMonitor("climabill-test", logging.NewNoopLogger())

	if err := m.SetDependencyAvailability(map[string]string{"component": "postgres"}, 1); err != nil {
		t.Fatal(err)
	}

	gauge, err := m.dependencyAvailability.GetMetricWith(map[string]string{"component": "postgres"})
	if err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(gauge); got != 1 {
		t.Fatalf("expected availability 1, got %v", got)
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "postgres"}, 0); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(gauge); got != 0 {
		t.Fatalf("expected availability 0, got %v", got)
	}
}

func TestSetDependencyAvailabilityRejectsUnknownLabels(t *testing.T) {
	m := NewMonitor("climabill-test", logging.NewNoopLogger())

	if err := m.SetDependencyAvailability(map[string]string{"dependency": "postgres"}, 1); err == nil {
		t.Fatal("expected an error for an unknown label name")
	}
}
