// Package types - Computation result types
package types

import "github.com/shopspring/decimal"

// EffortBreakdown is the pre-multiplier effort split by source
type EffortBreakdown struct {
	// BaseHours is the sum of base effort items
	BaseHours int64 `json:"base_hours"`

	// ScopeHours is the sum of selected scope areas
	ScopeHours int64 `json:"scope_hours"`

	// ParameterHours comes from chosen parameter options
	ParameterHours int64 `json:"parameter_hours"`

	// ComplianceHours comes from selected compliance factors
	ComplianceHours int64 `json:"compliance_hours"`

	// RequirementHours are the fixed requirement-tier bonuses
	RequirementHours int64 `json:"requirement_hours"`

	// ComplexityHours = Parameter + Compliance + Requirement hours
	ComplexityHours int64 `json:"complexity_hours"`

	// RawEffort = Base + Scope + Complexity hours
	RawEffort int64 `json:"raw_effort"`
}

// TeamLine is one staffed role of the resolved team
type TeamLine struct {
	RoleID    string          `json:"role_id"`
	RoleName  string          `json:"role_name"`
	FTE       decimal.Decimal `json:"fte"`
	DailyRate decimal.Decimal `json:"daily_rate"`
}

// PhaseEstimate is a phase with the duration label for the computed tier
type PhaseEstimate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration,omitempty"`
}

// Deliverable is a selected scope area as handed over to the customer
type Deliverable struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Hours    int    `json:"hours"`
}

// Assumption records a fallback the engine applied
type Assumption struct {
	// Component is the engine stage that applied the fallback
	Component string `json:"component"`

	// Message describes what was assumed
	Message string `json:"message"`
}

// Result is the full derived estimate. Monetary amounts and man-days
// keep full precision; use Display for the rounded presentation values.
type Result struct {
	Size          SizeTier        `json:"size"`
	TotalEffort   int64           `json:"total_effort"`
	RawEffort     int64           `json:"raw_effort"`
	Effort        EffortBreakdown `json:"effort"`
	DurationWeeks int             `json:"duration_weeks"`

	// ContextMultiplier is the compounded product of (1 + adjustment)
	ContextMultiplier decimal.Decimal `json:"context_multiplier"`

	ManDays     decimal.Decimal `json:"man_days"`
	BlendedRate decimal.Decimal `json:"blended_rate"`

	BaseCost          decimal.Decimal `json:"base_cost"`
	MarginAmount      decimal.Decimal `json:"margin_amount"`
	RiskAmount        decimal.Decimal `json:"risk_amount"`
	ContingencyAmount decimal.Decimal `json:"contingency_amount"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	FinalPrice        decimal.Decimal `json:"final_price"`

	// TeamComp is the resolved role -> FTE row
	TeamComp map[string]decimal.Decimal `json:"team_comp"`

	// Team is TeamComp joined with role data, in catalogue role order
	Team []TeamLine `json:"team"`

	// Roles echoes the catalogue rate table
	Roles []Role `json:"roles"`

	// SelectedScopes in catalogue order
	SelectedScopes []string `json:"selected_scopes"`

	// Deliverables are the selected areas with name and hours, same order
	Deliverables []Deliverable `json:"deliverables"`

	Phases         []PhaseEstimate `json:"phases,omitempty"`
	SizingCriteria *SizingCriteria `json:"sizing_criteria,omitempty"`
	Assumptions    []Assumption    `json:"assumptions,omitempty"`
}

// Display holds presentation values: whole currency units and
// man-days to one decimal place.
type Display struct {
	ManDays           decimal.Decimal `json:"man_days"`
	BlendedRate       int64           `json:"blended_rate"`
	BaseCost          int64           `json:"base_cost"`
	MarginAmount      int64           `json:"margin_amount"`
	RiskAmount        int64           `json:"risk_amount"`
	ContingencyAmount int64           `json:"contingency_amount"`
	DiscountAmount    int64           `json:"discount_amount"`
	FinalPrice        int64           `json:"final_price"`
}

// Display rounds the result half away from zero for presentation
func (r *Result) Display() Display {
	return Display{
		ManDays:           r.ManDays.Round(1),
		BlendedRate:       wholeUnits(r.BlendedRate),
		BaseCost:          wholeUnits(r.BaseCost),
		MarginAmount:      wholeUnits(r.MarginAmount),
		RiskAmount:        wholeUnits(r.RiskAmount),
		ContingencyAmount: wholeUnits(r.ContingencyAmount),
		DiscountAmount:    wholeUnits(r.DiscountAmount),
		FinalPrice:        wholeUnits(r.FinalPrice),
	}
}

func wholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
