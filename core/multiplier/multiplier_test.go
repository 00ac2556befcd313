package multiplier

import (
	"testing"

	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

func table() types.MultiplierTable {
	d := decimal.RequireFromString
	return types.MultiplierTable{
		"documentation": {"none": d("0.15"), "partial": d("0"), "complete": d("-0.10")},
		"k8sExperience": {"beginner": d("0.20"), "intermediate": d("0"), "expert": d("-0.15")},
		"timeline":      {"relaxed": d("-0.05"), "normal": d("0"), "aggressive": d("0.10")},
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		selected map[string]string
		expected string
	}{
		{"no selections is identity", nil, "1"},
		{"single category", map[string]string{"documentation": "none"}, "1.15"},
		{"compounded", map[string]string{"documentation": "none", "k8sExperience": "beginner"}, "1.38"},
		{"negative adjustments", map[string]string{"documentation": "complete", "k8sExperience": "expert"}, "0.765"},
		{"unknown category ignored", map[string]string{"budget": "tight", "timeline": "aggressive"}, "1.1"},
		{"unknown key ignored", map[string]string{"documentation": "scattered"}, "1"},
		{"zero adjustments", map[string]string{"documentation": "partial", "timeline": "normal"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(table(), tt.selected)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		raw      int64
		m        string
		expected int64
	}{
		{"identity", 52, "1", 52},
		{"documentation none", 52, "1.15", 60},
		{"half rounds away from zero", 5, "1.1", 6},
		{"rounds up above half", 52, "1.38", 72},
		{"rounds down below half", 10, "1.04", 10},
		{"discount rounds", 52, "0.765", 40},
		{"zero effort", 0, "1.38", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.raw, decimal.RequireFromString(tt.m))
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
