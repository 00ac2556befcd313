package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-estimator/core/catalog"
	"service-estimator/core/selection"
	"service-estimator/core/types"
)

var d = decimal.RequireFromString

func newTestEngine() *Engine {
	return New(zap.NewNop(), Config{SweepWorkers: 3})
}

// baselineSelection is the defaults with every context category cleared
func baselineSelection(cat *types.Catalog) *types.Selection {
	sel := selection.Defaults(cat)
	sel.Context = map[string]string{}
	return sel
}

// TestScenarioA is the minimal estimate: base effort only, no context
func TestScenarioA(t *testing.T) {
	cat := catalog.Baseline()
	r := newTestEngine().Compute(cat, baselineSelection(cat))

	if r.RawEffort != 52 {
		t.Errorf("expected raw effort 52, got %d", r.RawEffort)
	}
	if !r.ContextMultiplier.Equal(d("1")) {
		t.Errorf("expected multiplier 1, got %s", r.ContextMultiplier)
	}
	if r.TotalEffort != 52 {
		t.Errorf("expected total effort 52, got %d", r.TotalEffort)
	}
	if r.Size != types.SizeS {
		t.Errorf("expected size S, got %s", r.Size)
	}
	if r.DurationWeeks != 4 {
		t.Errorf("expected 4 weeks, got %d", r.DurationWeeks)
	}
	if !r.ManDays.Equal(d("6.5")) {
		t.Errorf("expected 6.5 man days, got %s", r.ManDays)
	}
	if !r.TeamComp["cloudArchitect"].Equal(d("0.8")) {
		t.Errorf("expected S row team composition, got %v", r.TeamComp)
	}
	if !r.BlendedRate.Equal(d("1388")) {
		t.Errorf("expected blended rate 1388, got %s", r.BlendedRate)
	}
	if !r.BaseCost.Equal(d("9022")) {
		t.Errorf("expected base cost 9022, got %s", r.BaseCost)
	}
	if !r.FinalPrice.Equal(d("11277.5")) {
		t.Errorf("expected final price 11277.5, got %s", r.FinalPrice)
	}
	if len(r.SelectedScopes) != 0 {
		t.Errorf("expected no scopes, got %v", r.SelectedScopes)
	}

	disp := r.Display()
	if disp.FinalPrice != 11278 {
		t.Errorf("expected displayed final price 11278, got %d", disp.FinalPrice)
	}
	if !disp.ManDays.Equal(d("6.5")) {
		t.Errorf("expected displayed man days 6.5, got %s", disp.ManDays)
	}
	if len(r.Assumptions) != 0 {
		t.Errorf("expected no assumptions, got %v", r.Assumptions)
	}
}

// TestScenarioB adds a single +15% context adjustment
func TestScenarioB(t *testing.T) {
	cat := catalog.Baseline()
	sel := baselineSelection(cat)
	sel.Context["documentation"] = "none"

	r := newTestEngine().Compute(cat, sel)
	if !r.ContextMultiplier.Equal(d("1.15")) {
		t.Errorf("expected multiplier 1.15, got %s", r.ContextMultiplier)
	}
	if r.TotalEffort != 60 {
		t.Errorf("expected total effort 60, got %d", r.TotalEffort)
	}
	if r.RawEffort != 52 {
		t.Errorf("expected raw effort to stay 52, got %d", r.RawEffort)
	}
	if !r.ManDays.Equal(d("7.5")) {
		t.Errorf("expected 7.5 man days, got %s", r.ManDays)
	}
}

// TestScenarioE prices an empty catalogue without dividing by zero
func TestScenarioE(t *testing.T) {
	cat := &types.Catalog{Pricing: catalog.DefaultPricing()}
	r := newTestEngine().Compute(cat, nil)

	if r.TotalEffort != 0 || r.Size != types.SizeS {
		t.Fatalf("expected zero effort size S, got %d %s", r.TotalEffort, r.Size)
	}
	for name, v := range map[string]decimal.Decimal{
		"man days":    r.ManDays,
		"base cost":   r.BaseCost,
		"margin":      r.MarginAmount,
		"risk":        r.RiskAmount,
		"contingency": r.ContingencyAmount,
		"discount":    r.DiscountAmount,
		"final price": r.FinalPrice,
	} {
		if !v.IsZero() {
			t.Errorf("%s: expected 0, got %s", name, v)
		}
	}
	if !r.BlendedRate.Equal(d("1400")) {
		t.Errorf("expected fallback rate 1400, got %s", r.BlendedRate)
	}
	if len(r.Assumptions) != 2 {
		t.Errorf("expected staffing fallbacks recorded, got %v", r.Assumptions)
	}
}

func TestComputeDefaultCatalog(t *testing.T) {
	cat := catalog.Default()
	r := newTestEngine().Compute(cat, nil)

	// base 52 + required assessment 16 + two environments 8
	if r.RawEffort != 76 {
		t.Errorf("expected raw effort 76, got %d", r.RawEffort)
	}
	// first options: 1.15 x 1.20 x 1 x 0.95
	if !r.ContextMultiplier.Equal(d("1.311")) {
		t.Errorf("expected multiplier 1.311, got %s", r.ContextMultiplier)
	}
	if r.TotalEffort != 100 {
		t.Errorf("expected total effort 100, got %d", r.TotalEffort)
	}
	if len(r.SelectedScopes) != 1 || r.SelectedScopes[0] != "assessment" {
		t.Errorf("expected required scope selected, got %v", r.SelectedScopes)
	}
	if len(r.Phases) != 3 || r.Phases[1].Duration != "2 weeks" {
		t.Errorf("unexpected phase plan %+v", r.Phases)
	}
	if r.SizingCriteria == nil || r.SizingCriteria.Effort != "up to 150h" {
		t.Errorf("unexpected sizing criteria %+v", r.SizingCriteria)
	}
}

func TestComputeFullSelection(t *testing.T) {
	cat := catalog.Default()
	state := selection.New(cat)
	for _, id := range []string{"landingZone", "cluster", "observability", "securityHardening", "serviceMesh"} {
		if change := state.ToggleScope(id); change.Outcome.Rejected() {
			t.Fatalf("toggle %s: %s", id, change.Message())
		}
	}
	if err := state.ApplyScenario("enterprise"); err != nil {
		t.Fatalf("apply scenario: %v", err)
	}
	for _, id := range []string{"pciDss", "iso27001"} {
		if err := state.SetCompliance(id, true); err != nil {
			t.Fatalf("set compliance: %v", err)
		}
	}
	if err := state.SetRequirements(types.Requirements{SecurityPosture: "zeroTrust", Availability: "critical", DisasterRecovery: "full"}); err != nil {
		t.Fatalf("set requirements: %v", err)
	}
	for category, key := range map[string]string{"documentation": "partial", "k8sExperience": "intermediate", "timeline": "normal"} {
		if err := state.SetContext(category, key); err != nil {
			t.Fatalf("set context: %v", err)
		}
	}

	r := newTestEngine().Compute(cat, state.Snapshot())

	// scopes 16+40+48+24+32+32 = 192; params 24+32+56+16 = 128;
	// compliance 24+16 = 40; requirements 64
	want := types.EffortBreakdown{
		BaseHours: 52, ScopeHours: 192, ParameterHours: 128,
		ComplianceHours: 40, RequirementHours: 64, ComplexityHours: 232, RawEffort: 476,
	}
	if r.Effort != want {
		t.Errorf("expected %+v, got %+v", want, r.Effort)
	}
	if r.TotalEffort != 476 || r.Size != types.SizeL || r.DurationWeeks != 12 {
		t.Errorf("expected 476h size L 12 weeks, got %dh %s %d", r.TotalEffort, r.Size, r.DurationWeeks)
	}
	if !r.BlendedRate.Equal(d("1357")) {
		t.Errorf("expected L blended rate 1357, got %s", r.BlendedRate)
	}
	if len(r.Assumptions) != 1 || r.Assumptions[0].Component != "effort" {
		t.Errorf("expected iso27001 hours assumption, got %v", r.Assumptions)
	}
}

func TestComputeRepairsSelection(t *testing.T) {
	cat := catalog.Default()
	sel := selection.Defaults(cat)
	sel.Scopes = types.NewIDSet("gitops", "finops")

	r := newTestEngine().Compute(cat, sel)

	want := []string{"assessment", "finops"}
	if len(r.SelectedScopes) != len(want) {
		t.Fatalf("expected %v, got %v", want, r.SelectedScopes)
	}
	for i := range want {
		if r.SelectedScopes[i] != want[i] {
			t.Errorf("expected %v, got %v", want, r.SelectedScopes)
		}
	}
	if !sel.Scopes.Equal(types.NewIDSet("gitops", "finops")) {
		t.Errorf("input selection was modified: %v", sel.Scopes.Sorted())
	}
	if len(r.Assumptions) != 1 || r.Assumptions[0].Component != "dependency" {
		t.Errorf("expected dependency assumption, got %v", r.Assumptions)
	}
}

func TestComputeDeterministic(t *testing.T) {
	cat := catalog.Default()
	sel := selection.Defaults(cat)
	sel.Compliance.Add("iso27001")

	first, err := json.Marshal(newTestEngine().Compute(cat, sel))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, _ := json.Marshal(newTestEngine().Compute(cat, sel))
		if string(next) != string(first) {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, next)
		}
	}
}

func TestMultiplierIdentity(t *testing.T) {
	cat := catalog.Default()
	sel := selection.Defaults(cat)
	sel.Context = nil

	r := newTestEngine().Compute(cat, sel)
	if !r.ContextMultiplier.Equal(d("1")) {
		t.Errorf("expected multiplier 1, got %s", r.ContextMultiplier)
	}
	if r.TotalEffort != r.RawEffort {
		t.Errorf("expected total %d to equal raw %d", r.TotalEffort, r.RawEffort)
	}
}

func TestTotalEffortMonotonicInScopes(t *testing.T) {
	cat := catalog.Default()
	state := selection.New(cat)
	e := newTestEngine()
	prev := e.Compute(cat, state.Snapshot()).TotalEffort

	for _, id := range []string{"finops", "landingZone", "cluster", "gitops", "observability", "securityHardening", "serviceMesh"} {
		state.ToggleScope(id)
		next := e.Compute(cat, state.Snapshot()).TotalEffort
		if next < prev {
			t.Errorf("adding %s decreased total effort %d -> %d", id, prev, next)
		}
		prev = next
	}
}

func TestSweep(t *testing.T) {
	cat := catalog.Default()
	base := selection.Defaults(cat)
	e := newTestEngine()

	results, err := e.Sweep(context.Background(), cat, base, cat.Scenarios)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != len(cat.Scenarios) {
		t.Fatalf("expected %d results, got %d", len(cat.Scenarios), len(results))
	}

	for i, sr := range results {
		if sr.Scenario.ID != cat.Scenarios[i].ID {
			t.Errorf("result %d out of order: %s", i, sr.Scenario.ID)
		}

		sel := base.Clone()
		for k, v := range sr.Scenario.Values {
			sel.Parameters[k] = v
		}
		want := e.Compute(cat, sel)
		if sr.Result.TotalEffort != want.TotalEffort || !sr.Result.FinalPrice.Equal(want.FinalPrice) {
			t.Errorf("%s: sweep result differs from sequential compute", sr.Scenario.ID)
		}
	}

	if base.Parameters["environments"] != "two" {
		t.Errorf("base selection was modified: %v", base.Parameters)
	}
	if results[2].Result.TotalEffort <= results[0].Result.TotalEffort {
		t.Errorf("expected enterprise above startup, got %d <= %d",
			results[2].Result.TotalEffort, results[0].Result.TotalEffort)
	}
}

func TestSweepCancelled(t *testing.T) {
	cat := catalog.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().Sweep(ctx, cat, nil, cat.Scenarios)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSweepEmpty(t *testing.T) {
	results, err := newTestEngine().Sweep(context.Background(), catalog.Default(), nil, nil)
	if err != nil || len(results) != 0 {
		t.Errorf("expected empty sweep, got %v %v", results, err)
	}
}

func TestComputeDeliverables(t *testing.T) {
	cat := catalog.Default()
	sel := selection.Defaults(cat)
	sel.Scopes = types.NewIDSet("assessment", "landingZone", "finops")

	r := newTestEngine().Compute(cat, sel)

	want := []types.Deliverable{
		{ID: "assessment", Name: "Current State Assessment", Category: "Foundation", Hours: 16},
		{ID: "landingZone", Name: "Landing Zone", Category: "Foundation", Hours: 40},
		{ID: "finops", Name: "Cost Governance", Category: "Operations", Hours: 12},
	}
	if len(r.Deliverables) != len(want) {
		t.Fatalf("expected %d deliverables, got %+v", len(want), r.Deliverables)
	}
	var total int64
	for i := range want {
		if r.Deliverables[i] != want[i] {
			t.Errorf("deliverable %d: expected %+v, got %+v", i, want[i], r.Deliverables[i])
		}
		total += int64(r.Deliverables[i].Hours)
	}
	if total != r.Effort.ScopeHours {
		t.Errorf("expected deliverable hours to sum to %d, got %d", r.Effort.ScopeHours, total)
	}
}
