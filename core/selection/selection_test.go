package selection

import (
	"testing"

	"github.com/shopspring/decimal"

	"service-estimator/core/catalog"
	"service-estimator/core/dependency"
	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

func TestDefaults(t *testing.T) {
	cat := catalog.Default()
	sel := Defaults(cat)

	if !sel.Scopes.Equal(types.NewIDSet("assessment")) {
		t.Errorf("expected only required scope, got %v", sel.Scopes.Sorted())
	}
	wantContext := map[string]string{
		"documentation": "none",
		"k8sExperience": "beginner",
		"stakeholders":  "low",
		"timeline":      "relaxed",
	}
	for k, v := range wantContext {
		if sel.Context[k] != v {
			t.Errorf("context %s: expected %s, got %s", k, v, sel.Context[k])
		}
	}
	wantParams := map[string]string{"environments": "two", "regions": "single", "iac": "terraform"}
	if len(sel.Parameters) != len(wantParams) {
		t.Errorf("expected parameters %v, got %v", wantParams, sel.Parameters)
	}
	for k, v := range wantParams {
		if sel.Parameters[k] != v {
			t.Errorf("parameter %s: expected %s, got %s", k, v, sel.Parameters[k])
		}
	}
	if sel.Requirements != types.BaselineRequirements() {
		t.Errorf("expected baseline requirements, got %+v", sel.Requirements)
	}
	if !sel.Pricing.Margin.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected margin seeded at 15, got %s", sel.Pricing.Margin)
	}
	if len(sel.Compliance) != 0 {
		t.Errorf("expected no compliance factors, got %v", sel.Compliance.Sorted())
	}
}

// TestScopeScenarios walks the prerequisite gate and the cascade through the state
func TestScopeScenarios(t *testing.T) {
	s := New(catalog.Default())

	if change := s.ToggleScope("cluster"); change.Outcome != dependency.RejectedMissingPrerequisite {
		t.Fatalf("expected cluster rejected before landing zone, got %s", change.Outcome)
	}
	if s.Snapshot().Scopes.Has("cluster") {
		t.Fatalf("rejected toggle changed the selection")
	}

	for _, id := range []string{"landingZone", "cluster", "observability"} {
		if change := s.ToggleScope(id); change.Outcome != dependency.Selected {
			t.Fatalf("expected %s selected, got %s", id, change.Outcome)
		}
	}

	change := s.ToggleScope("landingZone")
	if change.Outcome != dependency.Deselected {
		t.Fatalf("expected landing zone deselected, got %s", change.Outcome)
	}
	if got := s.Snapshot().Scopes; !got.Equal(types.NewIDSet("assessment")) {
		t.Errorf("expected cascade down to the required area, got %v", got.Sorted())
	}

	if change := s.ToggleScope("assessment"); change.Outcome != dependency.RejectedRequired {
		t.Errorf("expected required area locked, got %s", change.Outcome)
	}
}

func TestSelectDeselectIdempotent(t *testing.T) {
	s := New(catalog.Default())

	s.SelectScope("finops")
	if change := s.SelectScope("finops"); change.Outcome != dependency.Selected {
		t.Errorf("expected repeated select to report selected, got %s", change.Outcome)
	}
	if !s.Snapshot().Scopes.Has("finops") {
		t.Errorf("expected finops to stay selected")
	}

	s.DeselectScope("finops")
	if change := s.DeselectScope("finops"); change.Outcome != dependency.Deselected {
		t.Errorf("expected repeated deselect to report deselected, got %s", change.Outcome)
	}
	if change := s.DeselectScope("mainframe"); change.Outcome != dependency.RejectedUnknown {
		t.Errorf("expected unknown area rejected, got %s", change.Outcome)
	}
}

func TestApplyScenarioMerges(t *testing.T) {
	s := New(catalog.Default())
	if err := s.SetParameter("iac", "none"); err != nil {
		t.Fatalf("set parameter: %v", err)
	}

	if err := s.ApplyScenario("scaleup"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	params := s.Snapshot().Parameters
	if params["workloadCount"] != "some" || params["environments"] != "two" {
		t.Errorf("expected scenario values applied, got %v", params)
	}
	if params["iac"] != "none" {
		t.Errorf("expected untouched parameter to survive merge, got %v", params["iac"])
	}
	if params["regions"] != "single" {
		t.Errorf("expected default parameter to survive merge, got %v", params["regions"])
	}

	err := s.ApplyScenario("hyperscale")
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected NOT_FOUND for unknown scenario, got %v", err)
	}
}

func TestSetters(t *testing.T) {
	s := New(catalog.Default())

	tests := []struct {
		name     string
		fn       func() error
		wantType errors.Type
	}{
		{"unknown parameter", func() error { return s.SetParameter("ghost", "x") }, errors.TypeNotFound},
		{"unknown option", func() error { return s.SetParameter("regions", "global") }, errors.TypeSelection},
		{"unknown compliance factor", func() error { return s.SetCompliance("sox", true) }, errors.TypeNotFound},
		{"unknown context category", func() error { return s.SetContext("budget", "tight") }, errors.TypeNotFound},
		{"unknown context option", func() error { return s.SetContext("timeline", "yesterday") }, errors.TypeSelection},
		{"unknown security posture", func() error {
			return s.SetRequirements(types.Requirements{SecurityPosture: "paranoid"})
		}, errors.TypeSelection},
		{"unknown availability", func() error {
			return s.SetRequirements(types.Requirements{Availability: "five-nines"})
		}, errors.TypeSelection},
		{"unknown disaster recovery", func() error {
			return s.SetRequirements(types.Requirements{DisasterRecovery: "pilot"})
		}, errors.TypeSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}
}

func TestRequirementsPartialUpdate(t *testing.T) {
	s := New(catalog.Default())
	if err := s.SetRequirements(types.Requirements{Availability: "critical"}); err != nil {
		t.Fatalf("set requirements: %v", err)
	}
	got := s.Snapshot().Requirements
	want := types.Requirements{SecurityPosture: "standard", Availability: "critical", DisasterRecovery: "none"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRequirementsRejectedAsAWhole(t *testing.T) {
	tests := []struct {
		name string
		req  types.Requirements
	}{
		{"bad availability", types.Requirements{SecurityPosture: types.SecurityZeroTrust, Availability: "bogus"}},
		{"bad disaster recovery", types.Requirements{Availability: types.AvailabilityHigh, DisasterRecovery: "pilot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(catalog.Default())
			if err := s.SetRequirements(tt.req); !errors.IsType(err, errors.TypeSelection) {
				t.Fatalf("expected selection error, got %v", err)
			}
			if got, want := s.Snapshot().Requirements, types.BaselineRequirements(); got != want {
				t.Errorf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestPricingOverrides(t *testing.T) {
	s := New(catalog.Default())
	s.SetMargin(decimal.NewFromInt(20))
	s.SetRiskPremium(decimal.NewFromInt(0))
	s.SetContingency(decimal.RequireFromString("7.5"))

	p := s.Snapshot().Pricing
	if !p.Margin.Equal(decimal.NewFromInt(20)) || !p.RiskPremium.IsZero() || !p.Contingency.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("unexpected overrides %+v", p)
	}

	s.ResetPricing()
	if p := s.Snapshot().Pricing; !p.Margin.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected reset margin 15, got %s", p.Margin)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(catalog.Default())
	snap := s.Snapshot()
	snap.Parameters["regions"] = "multi"
	snap.Scopes.Add("finops")
	snap.Context["timeline"] = "aggressive"

	again := s.Snapshot()
	if again.Parameters["regions"] != "single" || again.Scopes.Has("finops") || again.Context["timeline"] != "relaxed" {
		t.Errorf("snapshot mutation leaked into state: %+v", again)
	}
}

func TestClearing(t *testing.T) {
	s := New(catalog.Default())
	s.ClearParameter("environments")
	s.ClearContext("documentation")
	if err := s.SetCompliance("gdpr", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCompliance("gdpr", false); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if _, ok := snap.Parameters["environments"]; ok {
		t.Errorf("expected environments cleared")
	}
	if _, ok := snap.Context["documentation"]; ok {
		t.Errorf("expected documentation cleared")
	}
	if snap.Compliance.Has("gdpr") {
		t.Errorf("expected gdpr deselected")
	}
}
