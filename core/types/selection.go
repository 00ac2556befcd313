// Package types - Selection state types
package types

import "github.com/shopspring/decimal"

// Selection is the mutable input owned by the host.
// Concurrent callers must work on independent copies (see Clone).
type Selection struct {
	// Scopes are the selected scope area ids
	Scopes IDSet `json:"scopes"`

	// Parameters maps parameter id -> chosen option value
	Parameters map[string]string `json:"parameters"`

	// Compliance are the selected compliance factor ids
	Compliance IDSet `json:"compliance"`

	// Context maps context category -> chosen option key
	Context map[string]string `json:"context"`

	// Requirements are the qualitative requirement tiers
	Requirements Requirements `json:"requirements"`

	// Pricing overrides the commercial percentages
	Pricing PricingOverride `json:"pricing"`
}

// Requirements are the qualitative requirement levels
type Requirements struct {
	SecurityPosture  string `json:"security_posture"`
	Availability     string `json:"availability"`
	DisasterRecovery string `json:"disaster_recovery"`
}

// BaselineRequirements returns the levels that carry no bonus hours
func BaselineRequirements() Requirements {
	return Requirements{
		SecurityPosture:  SecurityStandard,
		Availability:     AvailabilityStandard,
		DisasterRecovery: DisasterRecoveryNone,
	}
}

// PricingOverride is the user-adjustable subset of PricingConfig.
// Discount is intentionally absent; it always comes from the catalogue.
type PricingOverride struct {
	Margin      decimal.Decimal `json:"margin"`
	RiskPremium decimal.Decimal `json:"risk_premium"`
	Contingency decimal.Decimal `json:"contingency"`
}

// OverrideFrom seeds an override from the catalogue pricing
func OverrideFrom(cfg PricingConfig) PricingOverride {
	return PricingOverride{
		Margin:      cfg.Margin,
		RiskPremium: cfg.RiskPremium,
		Contingency: cfg.Contingency,
	}
}

// Clone returns a deep copy that shares nothing with s
func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	out := &Selection{
		Scopes:       s.Scopes.Clone(),
		Compliance:   s.Compliance.Clone(),
		Parameters:   make(map[string]string, len(s.Parameters)),
		Context:      make(map[string]string, len(s.Context)),
		Requirements: s.Requirements,
		Pricing:      s.Pricing,
	}
	for k, v := range s.Parameters {
		out.Parameters[k] = v
	}
	for k, v := range s.Context {
		out.Context[k] = v
	}
	return out
}
