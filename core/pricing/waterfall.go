// Package pricing converts effort and a blended rate into the price waterfall.
// All amounts stay at full decimal precision; presentation rounds later.
package pricing

import (
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

// DefaultHoursPerDay applies when the catalogue declares a non-positive day length
const DefaultHoursPerDay = 8

// Breakdown is the pricing part of a result
type Breakdown struct {
	ManDays           decimal.Decimal
	BaseCost          decimal.Decimal
	MarginAmount      decimal.Decimal
	RiskAmount        decimal.Decimal
	ContingencyAmount decimal.Decimal
	DiscountAmount    decimal.Decimal
	FinalPrice        decimal.Decimal

	// HoursPerDay is the day length actually used
	HoursPerDay int
}

// Calculate runs the waterfall. Margin, risk and contingency come from the
// override, discount from the catalogue. Every layer is a percentage of the
// base cost; layers never compound.
func Calculate(totalEffort int64, blendedRate decimal.Decimal, cfg types.PricingConfig, override types.PricingOverride) Breakdown {
	hpd := cfg.HoursPerDay
	if hpd <= 0 {
		hpd = DefaultHoursPerDay
	}

	b := Breakdown{HoursPerDay: hpd}
	b.ManDays = decimal.NewFromInt(totalEffort).Div(decimal.NewFromInt(int64(hpd)))
	b.BaseCost = b.ManDays.Mul(blendedRate)

	b.MarginAmount = layer(b.BaseCost, override.Margin)
	b.RiskAmount = layer(b.BaseCost, override.RiskPremium)
	b.ContingencyAmount = layer(b.BaseCost, override.Contingency)
	b.DiscountAmount = layer(b.BaseCost, cfg.Discount)

	b.FinalPrice = b.BaseCost.
		Add(b.MarginAmount).
		Add(b.RiskAmount).
		Add(b.ContingencyAmount).
		Sub(b.DiscountAmount)
	return b
}

// layer returns pct percent of base; shifting keeps it exact
func layer(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Shift(-2)
}
