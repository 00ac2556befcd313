// Package engine - Concurrent scenario sweep
package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"service-estimator/core/selection"
	"service-estimator/core/types"
)

// ScenarioResult pairs a scenario with its computed estimate
type ScenarioResult struct {
	Scenario types.Scenario
	Result   *types.Result
}

// Sweep applies each scenario on top of base and computes the estimates in
// parallel, bounded by Config.SweepWorkers. Every worker gets its own copy of
// the selection; the catalogue is shared read-only. Results keep the order
// of scenarios.
func (e *Engine) Sweep(ctx context.Context, cat *types.Catalog, base *types.Selection, scenarios []types.Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, len(scenarios))
	if len(scenarios) == 0 {
		return results, nil
	}

	if base == nil {
		base = selection.Defaults(cat)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.SweepWorkers)

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sel := base.Clone()
			for param, value := range sc.Values {
				sel.Parameters[param] = value
			}
			results[i] = ScenarioResult{Scenario: sc, Result: e.Compute(cat, sel)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("scenario sweep complete",
		zap.String("catalog", cat.Metadata.ID),
		zap.Int("scenarios", len(scenarios)),
		zap.Int("workers", e.config.SweepWorkers),
	)
	return results, nil
}
