package effort

import (
	"testing"

	"service-estimator/core/types"
)

func hours(h int) *int { return &h }

func testCatalog() *types.Catalog {
	return &types.Catalog{
		BaseEffort: []types.BaseEffortItem{
			{ID: "kickoff", Hours: 16},
			{ID: "discovery", Hours: 24},
			{ID: "handover", Hours: 12},
		},
		ScopeAreas: []types.ScopeArea{
			{ID: "network", Hours: 24},
			{ID: "cluster", Hours: 40},
		},
		Sections: []types.Section{{ID: "tech", Groups: []types.ParameterGroup{{Parameters: []types.Parameter{
			{ID: "environments", Options: []types.Option{
				{Value: "one"},
				{Value: "many", ExtraHours: hours(24)},
			}},
			{ID: "regions", Options: []types.Option{
				{Value: "single", ExtraHours: hours(0)},
				{Value: "multi", ExtraHours: hours(32)},
			}},
		}}}}},
		ComplianceFactors: []types.ComplianceFactor{
			{ID: "gdpr", Hours: hours(12)},
			{ID: "iso27001"},
			{ID: "waived", Hours: hours(0)},
		},
	}
}

func emptySelection() *types.Selection {
	return &types.Selection{
		Scopes:       types.NewIDSet(),
		Compliance:   types.NewIDSet(),
		Parameters:   map[string]string{},
		Requirements: types.BaselineRequirements(),
	}
}

func TestAggregateBaseOnly(t *testing.T) {
	b := Aggregate(testCatalog(), emptySelection())
	if b.BaseHours != 52 || b.RawEffort != 52 || b.ComplexityHours != 0 {
		t.Errorf("expected 52h base only, got %+v", b)
	}
}

func TestAggregate(t *testing.T) {
	sel := emptySelection()
	sel.Scopes = types.NewIDSet("network", "cluster", "unknownArea")
	sel.Parameters = map[string]string{"environments": "many", "regions": "single", "ghost": "x"}
	sel.Compliance = types.NewIDSet("gdpr", "iso27001", "waived", "hipaa")

	b := Aggregate(testCatalog(), sel)

	expected := types.EffortBreakdown{
		BaseHours:       52,
		ScopeHours:      64,
		ParameterHours:  24,
		ComplianceHours: 28,
		ComplexityHours: 52,
		RawEffort:       168,
	}
	if b != expected {
		t.Errorf("expected %+v, got %+v", expected, b)
	}
}

func TestRequirementHours(t *testing.T) {
	tests := []struct {
		name     string
		req      types.Requirements
		expected int64
	}{
		{"baseline", types.BaselineRequirements(), 0},
		{"enhanced security carries no bonus", types.Requirements{SecurityPosture: "enhanced", Availability: "high", DisasterRecovery: "standard"}, 0},
		{"zero trust", types.Requirements{SecurityPosture: "zeroTrust"}, 24},
		{"critical availability", types.Requirements{Availability: "critical"}, 16},
		{"full disaster recovery", types.Requirements{DisasterRecovery: "full"}, 24},
		{"all three", types.Requirements{SecurityPosture: "zeroTrust", Availability: "critical", DisasterRecovery: "full"}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequirementHours(tt.req); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestMonotonicity(t *testing.T) {
	cat := testCatalog()
	sel := emptySelection()
	prev := Aggregate(cat, sel)

	for _, id := range []string{"network", "cluster"} {
		sel.Scopes.Add(id)
		next := Aggregate(cat, sel)
		if next.RawEffort < prev.RawEffort {
			t.Errorf("adding scope %s decreased effort %d -> %d", id, prev.RawEffort, next.RawEffort)
		}
		prev = next
	}

	for _, id := range []string{"waived", "gdpr", "iso27001"} {
		sel.Compliance.Add(id)
		next := Aggregate(cat, sel)
		if next.ComplexityHours < prev.ComplexityHours {
			t.Errorf("adding compliance %s decreased complexity %d -> %d", id, prev.ComplexityHours, next.ComplexityHours)
		}
		prev = next
	}
}
