package dependency

import (
	"reflect"
	"testing"

	"service-estimator/core/types"
)

func testAreas() []types.ScopeArea {
	return []types.ScopeArea{
		{ID: "foundation", Name: "Landing Zone", Hours: 40, Required: true},
		{ID: "network", Name: "Network", Hours: 24, Requires: []string{"foundation"}},
		{ID: "security", Name: "Security Baseline", Hours: 16, Requires: []string{"network"}},
		{ID: "cluster", Name: "Kubernetes Cluster", Hours: 32, Requires: []string{"network"}},
		{ID: "workloads", Name: "Workload Onboarding", Hours: 20, Requires: []string{"cluster", "security"}},
		{ID: "monitoring", Name: "Monitoring", Hours: 8},
	}
}

// TestToggleScenarioC selects a dependent area before and after its prerequisite
func TestToggleScenarioC(t *testing.T) {
	v := New(testAreas())
	start := types.NewIDSet("foundation")

	next, change := v.Toggle(start, "security")
	if change.Outcome != RejectedMissingPrerequisite {
		t.Fatalf("expected rejection, got %s", change.Outcome)
	}
	if !next.Equal(start) {
		t.Errorf("expected selection unchanged, got %v", next.Sorted())
	}
	if !reflect.DeepEqual(change.Missing, []string{"network"}) {
		t.Errorf("expected missing [network], got %v", change.Missing)
	}

	next, change = v.Toggle(next, "network")
	if change.Outcome != Selected {
		t.Fatalf("expected network selected, got %s", change.Outcome)
	}
	next, change = v.Toggle(next, "security")
	if change.Outcome != Selected {
		t.Fatalf("expected security selected, got %s", change.Outcome)
	}
	if !next.Equal(types.NewIDSet("foundation", "network", "security")) {
		t.Errorf("unexpected selection %v", next.Sorted())
	}
}

// TestToggleScenarioD deselects a prerequisite and expects a transitive cascade
func TestToggleScenarioD(t *testing.T) {
	v := New(testAreas())
	selected := types.NewIDSet("foundation", "network", "security", "cluster", "workloads", "monitoring")

	next, change := v.Toggle(selected, "network")
	if change.Outcome != Deselected {
		t.Fatalf("expected deselected, got %s", change.Outcome)
	}
	want := types.NewIDSet("foundation", "monitoring")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want.Sorted(), next.Sorted())
	}
	if !reflect.DeepEqual(change.Cascaded, []string{"security", "cluster", "workloads"}) {
		t.Errorf("unexpected cascade %v", change.Cascaded)
	}
	if len(selected) != 6 {
		t.Errorf("input set was modified: %v", selected.Sorted())
	}
}

func TestToggleRejections(t *testing.T) {
	v := New(testAreas())
	start := types.NewIDSet("foundation", "monitoring")

	tests := []struct {
		name     string
		id       string
		expected Outcome
	}{
		{name: "required area cannot be deselected", id: "foundation", expected: RejectedRequired},
		{name: "unknown area is rejected", id: "mainframe", expected: RejectedUnknown},
		{name: "multiple missing prerequisites", id: "workloads", expected: RejectedMissingPrerequisite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, change := v.Toggle(start, tt.id)
			if change.Outcome != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, change.Outcome)
			}
			if !change.Outcome.Rejected() {
				t.Errorf("expected a rejected outcome")
			}
			if !next.Equal(start) {
				t.Errorf("expected selection unchanged, got %v", next.Sorted())
			}
			if change.Message() == "" {
				t.Errorf("expected a message")
			}
		})
	}
}

func TestToggleDeselectLeaf(t *testing.T) {
	v := New(testAreas())
	next, change := v.Toggle(types.NewIDSet("foundation", "monitoring"), "monitoring")
	if change.Outcome != Deselected {
		t.Fatalf("expected deselected, got %s", change.Outcome)
	}
	if len(change.Cascaded) != 0 {
		t.Errorf("expected no cascade, got %v", change.Cascaded)
	}
	if !next.Equal(types.NewIDSet("foundation")) {
		t.Errorf("unexpected selection %v", next.Sorted())
	}
}

func TestRepair(t *testing.T) {
	v := New(testAreas())

	// Externally built state: missing required area, orphaned dependents, unknown id
	broken := types.NewIDSet("security", "workloads", "cluster", "ghost")
	repaired, dropped := v.Repair(broken)

	if violations := v.Check(repaired); len(violations) != 0 {
		t.Errorf("expected no violations after repair, got %v", violations)
	}
	if !repaired.Equal(types.NewIDSet("foundation")) {
		t.Errorf("expected only foundation, got %v", repaired.Sorted())
	}
	if !reflect.DeepEqual(dropped, []string{"security", "cluster", "workloads"}) {
		t.Errorf("unexpected dropped ids %v", dropped)
	}
}

// TestRequiredPrerequisitesLocked covers a required area that itself has a prerequisite
func TestRequiredPrerequisitesLocked(t *testing.T) {
	areas := []types.ScopeArea{
		{ID: "identity", Hours: 8},
		{ID: "governance", Hours: 12, Required: true, Requires: []string{"identity"}},
	}
	v := New(areas)

	repaired, _ := v.Repair(types.NewIDSet())
	if !repaired.Equal(types.NewIDSet("identity", "governance")) {
		t.Fatalf("expected required closure, got %v", repaired.Sorted())
	}
	if _, change := v.Toggle(repaired, "identity"); change.Outcome != RejectedRequired {
		t.Errorf("expected prerequisite of required area to be locked, got %s", change.Outcome)
	}
}

// TestInvariantsHoldAfterEveryToggle walks a toggle sequence and checks both invariants
func TestInvariantsHoldAfterEveryToggle(t *testing.T) {
	v := New(testAreas())
	selected := types.NewIDSet()
	sequence := []string{
		"workloads", "network", "cluster", "security", "workloads",
		"foundation", "network", "monitoring", "network", "cluster",
		"security", "workloads", "cluster", "monitoring",
	}

	for i, id := range sequence {
		selected, _ = v.Toggle(selected, id)
		if violations := v.Check(selected); len(violations) != 0 {
			t.Fatalf("step %d (%s): violations %v", i, id, violations)
		}
	}
}

func TestOrdered(t *testing.T) {
	v := New(testAreas())
	got := v.Ordered(types.NewIDSet("monitoring", "network", "foundation"))
	want := []string{"foundation", "network", "monitoring"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
