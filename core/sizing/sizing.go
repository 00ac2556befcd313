// Package sizing maps total effort to a size tier and the tier to a
// delivery duration.
package sizing

import "service-estimator/core/types"

// Tier thresholds in hours. Each bound belongs to the lower tier.
const (
	MediumAbove = 150
	LargeAbove  = 300
)

var durationWeeks = map[types.SizeTier]int{
	types.SizeS: 4,
	types.SizeM: 7,
	types.SizeL: 12,
}

// Classify returns L above 300h, M above 150h, S otherwise
func Classify(totalEffort int64) types.SizeTier {
	switch {
	case totalEffort > LargeAbove:
		return types.SizeL
	case totalEffort > MediumAbove:
		return types.SizeM
	default:
		return types.SizeS
	}
}

// DurationWeeks returns the fixed duration for a tier, 0 for an invalid tier
func DurationWeeks(tier types.SizeTier) int {
	return durationWeeks[tier]
}

// PhasePlan returns every catalogue phase with its duration label for the tier
func PhasePlan(cat *types.Catalog, tier types.SizeTier) []types.PhaseEstimate {
	if len(cat.Phases) == 0 {
		return nil
	}
	plan := make([]types.PhaseEstimate, 0, len(cat.Phases))
	for _, p := range cat.Phases {
		plan = append(plan, types.PhaseEstimate{
			ID:       p.ID,
			Name:     p.Name,
			Duration: p.DurationBySize[tier],
		})
	}
	return plan
}

// Criteria returns the catalogue description of a tier, or nil
func Criteria(cat *types.Catalog, tier types.SizeTier) *types.SizingCriteria {
	c, ok := cat.SizingCriteria[tier]
	if !ok {
		return nil
	}
	return &c
}
