// Package staffing resolves the team for a size tier and its blended daily rate.
package staffing

import (
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

// FallbackRoleID is used when the catalogue declares no roles at all
const FallbackRoleID = "cloudArchitect"

// DefaultBlendedRate applies when the resolved team has no FTE
var DefaultBlendedRate = decimal.NewFromInt(1400)

// Staffing is the resolved team for a tier
type Staffing struct {
	// TeamComp is role id -> FTE
	TeamComp map[string]decimal.Decimal

	// Lines joins TeamComp with the role table, in role order
	Lines []types.TeamLine

	// BlendedRate is rounded to whole currency units
	BlendedRate decimal.Decimal

	// Fallbacks describes any default that was applied
	Fallbacks []string
}

// PrimaryRole returns the first role flagged primary, else the first role,
// else FallbackRoleID
func PrimaryRole(roles []types.Role) string {
	for _, r := range roles {
		if r.IsPrimary {
			return r.ID
		}
	}
	if len(roles) > 0 {
		return roles[0].ID
	}
	return FallbackRoleID
}

// Resolve picks the composition row for the tier and blends the role rates
// by FTE. A missing row becomes one primary role at 1.0 FTE; zero total FTE
// yields DefaultBlendedRate.
func Resolve(table types.TeamCompositionTable, roles []types.Role, tier types.SizeTier) Staffing {
	var s Staffing

	row, ok := table[tier]
	if ok {
		s.TeamComp = make(map[string]decimal.Decimal, len(row))
		for id, fte := range row {
			s.TeamComp[id] = fte
		}
	} else {
		primary := PrimaryRole(roles)
		s.TeamComp = map[string]decimal.Decimal{primary: decimal.NewFromInt(1)}
		s.Fallbacks = append(s.Fallbacks, "no team composition for size "+tier.String()+", staffing "+primary+" at 1.0 FTE")
	}

	weighted := decimal.Zero
	totalFTE := decimal.Zero
	for _, r := range roles {
		fte, ok := s.TeamComp[r.ID]
		if !ok || fte.IsZero() {
			continue
		}
		weighted = weighted.Add(r.DailyRate.Mul(fte))
		totalFTE = totalFTE.Add(fte)
		s.Lines = append(s.Lines, types.TeamLine{
			RoleID:    r.ID,
			RoleName:  r.Name,
			FTE:       fte,
			DailyRate: r.DailyRate,
		})
	}

	if totalFTE.IsZero() {
		s.BlendedRate = DefaultBlendedRate
		s.Fallbacks = append(s.Fallbacks, "team has no staffed FTE, using default blended rate "+DefaultBlendedRate.String())
		return s
	}

	s.BlendedRate = weighted.Div(totalFTE).Round(0)
	return s
}
