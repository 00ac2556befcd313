// Package selection owns the mutable selection state between recalculations.
package selection

import (
	"github.com/shopspring/decimal"

	"service-estimator/core/dependency"
	"service-estimator/core/types"
	"service-estimator/internal/errors"
)

// Defaults builds the initial selection for a catalogue: required areas,
// the first option of every context category, declared parameter defaults,
// baseline requirement levels and pricing seeded from the catalogue.
func Defaults(cat *types.Catalog) *types.Selection {
	sel := &types.Selection{
		Scopes:       types.NewIDSet(),
		Parameters:   make(map[string]string),
		Compliance:   types.NewIDSet(),
		Context:      make(map[string]string),
		Requirements: types.BaselineRequirements(),
		Pricing:      types.OverrideFrom(cat.Pricing),
	}

	sel.Scopes, _ = dependency.New(cat.ScopeAreas).Repair(sel.Scopes)

	for _, c := range cat.ContextMultipliers {
		if len(c.Options) > 0 {
			sel.Context[c.ID] = c.Options[0].Key
		}
	}
	for _, p := range cat.Parameters() {
		if p.Default != "" {
			sel.Parameters[p.ID] = p.Default
		}
	}
	return sel
}

// State is a selection bound to its catalogue. It is not safe for
// concurrent use; take a Snapshot to hand a copy to another goroutine.
type State struct {
	catalog   *types.Catalog
	validator *dependency.Validator
	sel       *types.Selection
}

// New creates a state initialised with Defaults
func New(cat *types.Catalog) *State {
	return &State{
		catalog:   cat,
		validator: dependency.New(cat.ScopeAreas),
		sel:       Defaults(cat),
	}
}

// Snapshot returns an independent copy of the current selection
func (s *State) Snapshot() *types.Selection {
	return s.sel.Clone()
}

// Catalog returns the bound catalogue
func (s *State) Catalog() *types.Catalog {
	return s.catalog
}

// ToggleScope flips a scope area through the dependency rules
func (s *State) ToggleScope(id string) dependency.Change {
	next, change := s.validator.Toggle(s.sel.Scopes, id)
	s.sel.Scopes = next
	return change
}

// SelectScope selects an area if it is not already selected
func (s *State) SelectScope(id string) dependency.Change {
	if s.sel.Scopes.Has(id) {
		return dependency.Change{ID: id, Outcome: dependency.Selected}
	}
	return s.ToggleScope(id)
}

// DeselectScope deselects an area if it is selected
func (s *State) DeselectScope(id string) dependency.Change {
	if !s.sel.Scopes.Has(id) {
		if _, ok := s.catalog.ScopeArea(id); !ok {
			return dependency.Change{ID: id, Outcome: dependency.RejectedUnknown}
		}
		return dependency.Change{ID: id, Outcome: dependency.Deselected}
	}
	return s.ToggleScope(id)
}

// SetParameter chooses an option for a parameter
func (s *State) SetParameter(id, value string) error {
	p, ok := s.catalog.Parameter(id)
	if !ok {
		return errors.NotFound("parameter", id)
	}
	if _, ok := p.Option(value); !ok {
		return errors.Selection("parameter " + id + " has no option " + value)
	}
	s.sel.Parameters[id] = value
	return nil
}

// ClearParameter removes the chosen option
func (s *State) ClearParameter(id string) {
	delete(s.sel.Parameters, id)
}

// ApplyScenario merges the scenario values into the current parameters.
// Parameters the scenario does not mention keep their value.
func (s *State) ApplyScenario(id string) error {
	sc, ok := s.catalog.Scenario(id)
	if !ok {
		return errors.NotFound("scenario", id)
	}
	for k, v := range sc.Values {
		s.sel.Parameters[k] = v
	}
	return nil
}

// SetCompliance selects or deselects a compliance factor
func (s *State) SetCompliance(id string, selected bool) error {
	if _, ok := s.catalog.ComplianceFactor(id); !ok {
		return errors.NotFound("compliance factor", id)
	}
	if selected {
		s.sel.Compliance.Add(id)
	} else {
		s.sel.Compliance.Remove(id)
	}
	return nil
}

// SetContext chooses the option for a context category
func (s *State) SetContext(category, key string) error {
	for _, c := range s.catalog.ContextMultipliers {
		if c.ID != category {
			continue
		}
		for _, o := range c.Options {
			if o.Key == key {
				s.sel.Context[category] = key
				return nil
			}
		}
		return errors.Selection("context " + category + " has no option " + key)
	}
	return errors.NotFound("context category", category)
}

// ClearContext removes the category selection; it then contributes a factor of 1
func (s *State) ClearContext(category string) {
	delete(s.sel.Context, category)
}

// SetRequirements replaces the requirement levels. Empty fields keep their
// value. Nothing changes unless every given level is known.
func (s *State) SetRequirements(req types.Requirements) error {
	if req.SecurityPosture != "" {
		switch req.SecurityPosture {
		case types.SecurityStandard, types.SecurityEnhanced, types.SecurityZeroTrust:
		default:
			return errors.Selection("unknown security posture " + req.SecurityPosture)
		}
	}
	if req.Availability != "" {
		switch req.Availability {
		case types.AvailabilityStandard, types.AvailabilityHigh, types.AvailabilityCritical:
		default:
			return errors.Selection("unknown availability target " + req.Availability)
		}
	}
	if req.DisasterRecovery != "" {
		switch req.DisasterRecovery {
		case types.DisasterRecoveryNone, types.DisasterRecoveryBasic,
			types.DisasterRecoveryStandard, types.DisasterRecoveryFull:
		default:
			return errors.Selection("unknown disaster recovery tier " + req.DisasterRecovery)
		}
	}

	if req.SecurityPosture != "" {
		s.sel.Requirements.SecurityPosture = req.SecurityPosture
	}
	if req.Availability != "" {
		s.sel.Requirements.Availability = req.Availability
	}
	if req.DisasterRecovery != "" {
		s.sel.Requirements.DisasterRecovery = req.DisasterRecovery
	}
	return nil
}

// SetMargin overrides the margin percentage
func (s *State) SetMargin(pct decimal.Decimal) {
	s.sel.Pricing.Margin = pct
}

// SetRiskPremium overrides the risk premium percentage
func (s *State) SetRiskPremium(pct decimal.Decimal) {
	s.sel.Pricing.RiskPremium = pct
}

// SetContingency overrides the contingency percentage
func (s *State) SetContingency(pct decimal.Decimal) {
	s.sel.Pricing.Contingency = pct
}

// ResetPricing restores the catalogue percentages
func (s *State) ResetPricing() {
	s.sel.Pricing = types.OverrideFrom(s.catalog.Pricing)
}
