// Package effort sums the pre-multiplier effort of a selection.
package effort

import "service-estimator/core/types"

// Fixed bonus hours for the qualitative requirement tiers
const (
	ZeroTrustBonusHours            = 24
	CriticalAvailabilityBonusHours = 16
	FullDisasterRecoveryBonusHours = 24
)

// Aggregate returns base, scope and complexity hours for a selection.
// Unknown ids, unchosen parameters and options without hours add nothing.
func Aggregate(cat *types.Catalog, sel *types.Selection) types.EffortBreakdown {
	var b types.EffortBreakdown

	b.BaseHours = cat.BaseHours()

	for _, area := range cat.ScopeAreas {
		if sel.Scopes.Has(area.ID) {
			b.ScopeHours += int64(area.Hours)
		}
	}

	b.ParameterHours = ParameterHours(cat, sel.Parameters)

	for _, f := range cat.ComplianceFactors {
		if sel.Compliance.Has(f.ID) {
			b.ComplianceHours += int64(f.EffectiveHours())
		}
	}

	b.RequirementHours = RequirementHours(sel.Requirements)

	b.ComplexityHours = b.ParameterHours + b.ComplianceHours + b.RequirementHours
	b.RawEffort = b.BaseHours + b.ScopeHours + b.ComplexityHours
	return b
}

// ParameterHours sums the extra hours of the chosen option of every parameter
func ParameterHours(cat *types.Catalog, chosen map[string]string) int64 {
	var total int64
	for _, p := range cat.Parameters() {
		value, ok := chosen[p.ID]
		if !ok {
			continue
		}
		opt, ok := p.Option(value)
		if !ok || opt.ExtraHours == nil {
			continue
		}
		total += int64(*opt.ExtraHours)
	}
	return total
}

// RequirementHours returns the independent requirement bonuses
func RequirementHours(req types.Requirements) int64 {
	var total int64
	if req.SecurityPosture == types.SecurityZeroTrust {
		total += ZeroTrustBonusHours
	}
	if req.Availability == types.AvailabilityCritical {
		total += CriticalAvailabilityBonusHours
	}
	if req.DisasterRecovery == types.DisasterRecoveryFull {
		total += FullDisasterRecoveryBonusHours
	}
	return total
}
