// Package types - Service catalogue (configuration model) types
package types

import "github.com/shopspring/decimal"

// DefaultComplianceHours is used when a compliance factor declares no hours
const DefaultComplianceHours = 16

// Catalog is the immutable declarative input for one service.
// It is loaded once per session and shared read-only between computations.
type Catalog struct {
	// Metadata identifies the service
	Metadata Metadata `json:"metadata"`

	// BaseEffort items are always counted
	BaseEffort []BaseEffortItem `json:"base_effort"`

	// ScopeAreas are the selectable work packages
	ScopeAreas []ScopeArea `json:"scope_areas"`

	// Sections group the sizing parameters for presentation
	Sections []Section `json:"sections,omitempty"`

	// ComplianceFactors add fixed hours when selected
	ComplianceFactors []ComplianceFactor `json:"compliance_factors,omitempty"`

	// ContextMultipliers adjust aggregated effort per category
	ContextMultipliers []ContextCategory `json:"context_multipliers"`

	// Roles is the daily rate table
	Roles []Role `json:"roles"`

	// TeamComposition maps a tier to role FTE allocations
	TeamComposition TeamCompositionTable `json:"team_composition"`

	// Pricing holds the default commercial knobs
	Pricing PricingConfig `json:"pricing"`

	// Scenarios are named parameter presets
	Scenarios []Scenario `json:"scenarios,omitempty"`

	// Phases describe delivery phases per tier
	Phases []Phase `json:"phases,omitempty"`

	// SizingCriteria describe each tier for the reader
	SizingCriteria map[SizeTier]SizingCriteria `json:"sizing_criteria,omitempty"`
}

// Metadata identifies a service catalogue
type Metadata struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Category string `json:"category,omitempty"`
}

// BaseEffortItem is a fixed block of hours present in every engagement
type BaseEffortItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Hours       int    `json:"hours"`
}

// ScopeArea is a selectable package of work with prerequisite edges
type ScopeArea struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Hours       int    `json:"hours"`

	// Required areas are always selected
	Required bool `json:"required,omitempty"`

	// Requires lists prerequisite area ids, in declaration order
	Requires []string `json:"requires,omitempty"`
}

// Section is a titled collection of parameter groups
type Section struct {
	ID     string           `json:"id"`
	Label  string           `json:"label"`
	Groups []ParameterGroup `json:"groups"`
}

// ParameterGroup is a titled list of parameters
type ParameterGroup struct {
	Title      string      `json:"title"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is a sizing question with a fixed set of options
type Parameter struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Required bool     `json:"required,omitempty"`
	Default  string   `json:"default,omitempty"`
	Options  []Option `json:"options"`
}

// Option returns the option with the given value
func (p Parameter) Option(value string) (Option, bool) {
	for _, o := range p.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Option is one answer to a parameter
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`

	// ExtraHours is nil when the option adds no complexity
	ExtraHours *int `json:"extra_hours,omitempty"`

	// SizeImpact is informational only
	SizeImpact string `json:"size_impact,omitempty"`
}

// ComplianceFactor is a selectable regulatory or complexity driver
type ComplianceFactor struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Hours is nil when undeclared; DefaultComplianceHours applies
	Hours *int `json:"hours,omitempty"`
}

// EffectiveHours returns the declared hours or the fallback
func (f ComplianceFactor) EffectiveHours() int {
	if f.Hours == nil {
		return DefaultComplianceHours
	}
	return *f.Hours
}

// ContextCategory is one dimension of the context multiplier
type ContextCategory struct {
	ID      string          `json:"id"`
	Label   string          `json:"label,omitempty"`
	Options []ContextOption `json:"options"`
}

// ContextOption is a keyed fractional adjustment (0.15 means +15%)
type ContextOption struct {
	Key        string          `json:"key"`
	Label      string          `json:"label,omitempty"`
	Adjustment decimal.Decimal `json:"adjustment"`
}

// MultiplierTable is category -> option key -> adjustment
type MultiplierTable map[string]map[string]decimal.Decimal

// Role is a staffed role with its daily rate
type Role struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	IsPrimary bool            `json:"is_primary,omitempty"`
}

// TeamCompositionTable maps a tier to role id -> FTE
type TeamCompositionTable map[SizeTier]map[string]decimal.Decimal

// PricingConfig holds percentages (15 means 15%) and the working day length
type PricingConfig struct {
	Margin      decimal.Decimal `json:"margin"`
	RiskPremium decimal.Decimal `json:"risk_premium"`
	Contingency decimal.Decimal `json:"contingency"`
	Discount    decimal.Decimal `json:"discount"`
	HoursPerDay int             `json:"hours_per_day"`
}

// Scenario is a named bundle of parameter values
type Scenario struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Values      map[string]string `json:"values"`
}

// Phase is a delivery phase with a duration label per tier
type Phase struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	DurationBySize map[SizeTier]string `json:"duration_by_size,omitempty"`
}

// SizingCriteria describes a tier in prose
type SizingCriteria struct {
	Duration    string `json:"duration,omitempty"`
	Effort      string `json:"effort,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScopeArea looks up an area by id
func (c *Catalog) ScopeArea(id string) (ScopeArea, bool) {
	for _, a := range c.ScopeAreas {
		if a.ID == id {
			return a, true
		}
	}
	return ScopeArea{}, false
}

// ComplianceFactor looks up a factor by id
func (c *Catalog) ComplianceFactor(id string) (ComplianceFactor, bool) {
	for _, f := range c.ComplianceFactors {
		if f.ID == id {
			return f, true
		}
	}
	return ComplianceFactor{}, false
}

// Parameters returns every parameter across sections in declaration order
func (c *Catalog) Parameters() []Parameter {
	var params []Parameter
	for _, s := range c.Sections {
		for _, g := range s.Groups {
			params = append(params, g.Parameters...)
		}
	}
	return params
}

// Parameter looks up a parameter by id
func (c *Catalog) Parameter(id string) (Parameter, bool) {
	for _, p := range c.Parameters() {
		if p.ID == id {
			return p, true
		}
	}
	return Parameter{}, false
}

// Scenario looks up a scenario by id
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Role looks up a role by id
func (c *Catalog) Role(id string) (Role, bool) {
	for _, r := range c.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// MultiplierTable flattens the context categories into a lookup table
func (c *Catalog) MultiplierTable() MultiplierTable {
	table := make(MultiplierTable, len(c.ContextMultipliers))
	for _, cat := range c.ContextMultipliers {
		opts := make(map[string]decimal.Decimal, len(cat.Options))
		for _, o := range cat.Options {
			opts[o.Key] = o.Adjustment
		}
		table[cat.ID] = opts
	}
	return table
}

// BaseHours sums the base effort items
func (c *Catalog) BaseHours() int64 {
	var total int64
	for _, item := range c.BaseEffort {
		total += int64(item.Hours)
	}
	return total
}
