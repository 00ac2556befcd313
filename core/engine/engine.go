// Package engine wires the calculation stages into a single pure call:
// catalogue + selection in, result out. The CLI is a thin wrapper around it.
package engine

import (
	"go.uber.org/zap"

	"service-estimator/core/dependency"
	"service-estimator/core/effort"
	"service-estimator/core/multiplier"
	"service-estimator/core/pricing"
	"service-estimator/core/selection"
	"service-estimator/core/sizing"
	"service-estimator/core/staffing"
	"service-estimator/core/types"
	"service-estimator/internal/logging"
)

// Config configures the engine
type Config struct {
	// SweepWorkers bounds concurrent scenario computations
	SweepWorkers int
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{SweepWorkers: 4}
}

// Engine computes estimates. It holds no per-computation state and is safe
// for concurrent use.
type Engine struct {
	logger *zap.Logger
	config Config
}

// New creates an engine. A nil logger uses the global logger.
func New(logger *zap.Logger, config Config) *Engine {
	if logger == nil {
		logger = logging.Named("engine")
	}
	if config.SweepWorkers <= 0 {
		config.SweepWorkers = DefaultConfig().SweepWorkers
	}
	return &Engine{logger: logger, config: config}
}

// Compute is a convenience wrapper using a default engine
func Compute(cat *types.Catalog, sel *types.Selection) *types.Result {
	return New(zap.NewNop(), DefaultConfig()).Compute(cat, sel)
}

// Compute derives the full estimate. It never mutates its inputs and never
// fails: malformed or partial entries fall back to zero or defaults, and
// every fallback taken is listed in Result.Assumptions. A nil selection
// computes the catalogue defaults.
func (e *Engine) Compute(cat *types.Catalog, sel *types.Selection) *types.Result {
	if sel == nil {
		sel = selection.Defaults(cat)
	}
	rec := &recorder{logger: e.logger}

	validator := dependency.New(cat.ScopeAreas)
	work := sel.Clone()
	var dropped []string
	work.Scopes, dropped = validator.Repair(sel.Scopes)
	for _, id := range dropped {
		rec.note("dependency", "scope "+id+" dropped: prerequisite not selected")
	}

	for _, f := range cat.ComplianceFactors {
		if f.Hours == nil && work.Compliance.Has(f.ID) {
			rec.note("effort", "compliance factor "+f.ID+" declares no hours, assuming 16")
		}
	}

	breakdown := effort.Aggregate(cat, work)
	mult := multiplier.Compute(cat.MultiplierTable(), work.Context)
	total := multiplier.Apply(breakdown.RawEffort, mult)
	tier := sizing.Classify(total)

	staff := staffing.Resolve(cat.TeamComposition, cat.Roles, tier)
	for _, msg := range staff.Fallbacks {
		rec.note("staffing", msg)
	}

	price := pricing.Calculate(total, staff.BlendedRate, cat.Pricing, work.Pricing)
	if price.HoursPerDay != cat.Pricing.HoursPerDay {
		rec.note("pricing", "hours per day not positive, assuming 8")
	}

	result := &types.Result{
		Size:              tier,
		TotalEffort:       total,
		RawEffort:         breakdown.RawEffort,
		Effort:            breakdown,
		DurationWeeks:     sizing.DurationWeeks(tier),
		ContextMultiplier: mult,
		ManDays:           price.ManDays,
		BlendedRate:       staff.BlendedRate,
		BaseCost:          price.BaseCost,
		MarginAmount:      price.MarginAmount,
		RiskAmount:        price.RiskAmount,
		ContingencyAmount: price.ContingencyAmount,
		DiscountAmount:    price.DiscountAmount,
		FinalPrice:        price.FinalPrice,
		TeamComp:          staff.TeamComp,
		Team:              staff.Lines,
		Roles:             append([]types.Role(nil), cat.Roles...),
		SelectedScopes:    validator.Ordered(work.Scopes),
		Phases:            sizing.PhasePlan(cat, tier),
		SizingCriteria:    sizing.Criteria(cat, tier),
		Assumptions:       rec.assumptions,
	}

	for _, id := range result.SelectedScopes {
		area, _ := cat.ScopeArea(id)
		result.Deliverables = append(result.Deliverables, types.Deliverable{
			ID:       area.ID,
			Name:     area.Name,
			Category: area.Category,
			Hours:    area.Hours,
		})
	}

	e.logger.Debug("estimate computed",
		zap.String("catalog", cat.Metadata.ID),
		zap.String("size", string(tier)),
		zap.Int64("raw_effort", breakdown.RawEffort),
		zap.Int64("total_effort", total),
		zap.String("final_price", price.FinalPrice.StringFixed(2)),
	)
	return result
}

// recorder collects fallbacks for the result and logs them at debug level
type recorder struct {
	logger      *zap.Logger
	assumptions []types.Assumption
}

func (r *recorder) note(component, message string) {
	r.assumptions = append(r.assumptions, types.Assumption{Component: component, Message: message})
	r.logger.Debug("fallback applied", zap.String("component", component), zap.String("detail", message))
}
