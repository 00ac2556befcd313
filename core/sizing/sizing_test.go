package sizing

import (
	"testing"

	"service-estimator/core/types"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		effort   int64
		expected types.SizeTier
	}{
		{0, types.SizeS},
		{52, types.SizeS},
		{150, types.SizeS},
		{151, types.SizeM},
		{300, types.SizeM},
		{301, types.SizeL},
		{5000, types.SizeL},
	}

	for _, tt := range tests {
		if got := Classify(tt.effort); got != tt.expected {
			t.Errorf("Classify(%d): expected %s, got %s", tt.effort, tt.expected, got)
		}
	}
}

func TestDurationWeeks(t *testing.T) {
	expected := map[types.SizeTier]int{types.SizeS: 4, types.SizeM: 7, types.SizeL: 12, "XL": 0}
	for tier, weeks := range expected {
		if got := DurationWeeks(tier); got != weeks {
			t.Errorf("DurationWeeks(%s): expected %d, got %d", tier, weeks, got)
		}
	}
}

func TestPhasePlan(t *testing.T) {
	cat := &types.Catalog{
		Phases: []types.Phase{
			{ID: "plan", Name: "Plan", DurationBySize: map[types.SizeTier]string{types.SizeS: "1 week", types.SizeL: "3 weeks"}},
			{ID: "run", Name: "Run", DurationBySize: map[types.SizeTier]string{types.SizeM: "4 weeks"}},
		},
		SizingCriteria: map[types.SizeTier]types.SizingCriteria{
			types.SizeL: {Effort: "over 300h"},
		},
	}

	plan := PhasePlan(cat, types.SizeL)
	if len(plan) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(plan))
	}
	if plan[0].Duration != "3 weeks" || plan[1].Duration != "" {
		t.Errorf("unexpected durations %+v", plan)
	}

	if c := Criteria(cat, types.SizeL); c == nil || c.Effort != "over 300h" {
		t.Errorf("expected L criteria, got %+v", c)
	}
	if c := Criteria(cat, types.SizeS); c != nil {
		t.Errorf("expected no S criteria, got %+v", c)
	}
	if PhasePlan(&types.Catalog{}, types.SizeS) != nil {
		t.Errorf("expected nil plan for catalogue without phases")
	}
}
