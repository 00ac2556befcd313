// Package multiplier folds per-category context adjustments into one scalar.
package multiplier

import (
	"github.com/shopspring/decimal"

	"service-estimator/core/types"
)

// One is the identity multiplier
var One = decimal.NewFromInt(1)

// Compute returns the product of (1 + adjustment) over every category with
// a selection found in the table. Categories or keys missing from the table
// contribute a factor of 1.
func Compute(table types.MultiplierTable, selected map[string]string) decimal.Decimal {
	result := One
	for category, key := range selected {
		options, ok := table[category]
		if !ok {
			continue
		}
		adj, ok := options[key]
		if !ok {
			continue
		}
		result = result.Mul(One.Add(adj))
	}
	return result
}

// Apply scales raw effort and rounds half away from zero to whole hours
func Apply(rawEffort int64, m decimal.Decimal) int64 {
	return decimal.NewFromInt(rawEffort).Mul(m).Round(0).IntPart()
}
