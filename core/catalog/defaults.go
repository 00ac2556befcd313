// Package catalog - Built-in catalogue defaults
// These tables back-fill catalogues that omit a section and form the
// baseline catalogue used when no file is given.
package catalog

import (
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

// Base effort keys that every catalogue carries
const (
	BaseKickoff   = "kickoff"
	BaseDiscovery = "discovery"
	BaseHandover  = "handover"
)

// DefaultBaseEffort returns kickoff, discovery and handover (52h total)
func DefaultBaseEffort() []types.BaseEffortItem {
	return []types.BaseEffortItem{
		{ID: BaseKickoff, Label: "Project Coordination", Description: "Kickoff, coordination, planning", Hours: 16},
		{ID: BaseDiscovery, Label: "Discovery & Assessment", Description: "Initial assessment, current state analysis", Hours: 24},
		{ID: BaseHandover, Label: "Handover & Training", Description: "Final handover, knowledge transfer", Hours: 12},
	}
}

// DefaultPricing returns margin 15, risk 5, contingency 5, discount 0, 8h days
func DefaultPricing() types.PricingConfig {
	return types.PricingConfig{
		Margin:      decimal.NewFromInt(15),
		RiskPremium: decimal.NewFromInt(5),
		Contingency: decimal.NewFromInt(5),
		Discount:    decimal.Zero,
		HoursPerDay: 8,
	}
}

// DefaultRoles returns the standard consulting rate card
func DefaultRoles() []types.Role {
	return []types.Role{
		{ID: "cloudArchitect", Name: "Cloud Architect", DailyRate: decimal.NewFromInt(1500), IsPrimary: true},
		{ID: "securityArchitect", Name: "Security Architect", DailyRate: decimal.NewFromInt(1400)},
		{ID: "platformEngineer", Name: "Platform Engineer", DailyRate: decimal.NewFromInt(1300)},
		{ID: "projectManager", Name: "Project Manager", DailyRate: decimal.NewFromInt(1100)},
	}
}

// DefaultContextMultipliers returns the four standard context categories
func DefaultContextMultipliers() []types.ContextCategory {
	opt := func(key, label, adj string) types.ContextOption {
		return types.ContextOption{Key: key, Label: label, Adjustment: decimal.RequireFromString(adj)}
	}
	return []types.ContextCategory{
		{ID: "documentation", Label: "Existing Documentation", Options: []types.ContextOption{
			opt("none", "None", "0.15"),
			opt("partial", "Partial", "0"),
			opt("complete", "Complete", "-0.10"),
		}},
		{ID: "k8sExperience", Label: "Team Kubernetes Experience", Options: []types.ContextOption{
			opt("beginner", "Beginner", "0.20"),
			opt("intermediate", "Intermediate", "0"),
			opt("expert", "Expert", "-0.15"),
		}},
		{ID: "stakeholders", Label: "Stakeholder Complexity", Options: []types.ContextOption{
			opt("low", "Low", "0"),
			opt("medium", "Medium", "0"),
			opt("high", "High", "0.15"),
		}},
		{ID: "timeline", Label: "Timeline Pressure", Options: []types.ContextOption{
			opt("relaxed", "Relaxed", "-0.05"),
			opt("normal", "Normal", "0"),
			opt("aggressive", "Aggressive", "0.10"),
		}},
	}
}

// DefaultTeamComposition returns the S/M/L staffing rows
func DefaultTeamComposition() types.TeamCompositionTable {
	row := func(ca, sa, pe, pm string) map[string]decimal.Decimal {
		return map[string]decimal.Decimal{
			"cloudArchitect":    decimal.RequireFromString(ca),
			"securityArchitect": decimal.RequireFromString(sa),
			"platformEngineer":  decimal.RequireFromString(pe),
			"projectManager":    decimal.RequireFromString(pm),
		}
	}
	return types.TeamCompositionTable{
		types.SizeS: row("0.8", "0.3", "0.4", "0.2"),
		types.SizeM: row("1.0", "0.5", "0.6", "0.3"),
		types.SizeL: row("1.0", "0.7", "0.8", "0.5"),
	}
}

// WithDefaults back-fills the sections a catalogue left empty and makes sure
// the kickoff, discovery and handover base items exist. The catalogue is
// modified in place and returned. Pricing is left untouched.
func WithDefaults(cat *types.Catalog) *types.Catalog {
	present := make(map[string]bool, len(cat.BaseEffort))
	for _, item := range cat.BaseEffort {
		present[item.ID] = true
	}
	for _, item := range DefaultBaseEffort() {
		if !present[item.ID] {
			cat.BaseEffort = append(cat.BaseEffort, item)
		}
	}

	if len(cat.Roles) == 0 {
		cat.Roles = DefaultRoles()
	}
	if len(cat.TeamComposition) == 0 {
		cat.TeamComposition = DefaultTeamComposition()
	}
	if len(cat.ContextMultipliers) == 0 {
		cat.ContextMultipliers = DefaultContextMultipliers()
	}
	if cat.Metadata.Name == "" {
		cat.Metadata.Name = "Universal Service Calculator"
	}
	return cat
}

// Baseline returns a catalogue made only of defaults: 52h of base effort,
// no scope areas, parameters or compliance factors.
func Baseline() *types.Catalog {
	cat := &types.Catalog{
		Metadata: types.Metadata{ID: "baseline", Version: "v1.0"},
		Pricing:  DefaultPricing(),
	}
	return WithDefaults(cat)
}
