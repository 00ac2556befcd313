// Package ui - Scenario sweep runner with live feedback
package ui

import (
	"context"
	"fmt"
	"time"

	"service-estimator/core/engine"
	"service-estimator/core/types"
)

// SweepRunner runs a scenario sweep and renders the comparison
type SweepRunner struct {
	w        *Writer
	engine   *engine.Engine
	currency string
}

// NewSweepRunner creates a runner
func NewSweepRunner(w *Writer, eng *engine.Engine, currency string) *SweepRunner {
	return &SweepRunner{
		w:        w,
		engine:   eng,
		currency: currency,
	}
}

// SweepOutcome is the result of a sweep run
type SweepOutcome struct {
	Catalog  types.Metadata
	Results  []engine.ScenarioResult
	Duration time.Duration
}

// Run computes every catalogue scenario on top of base
func (r *SweepRunner) Run(ctx context.Context, cat *types.Catalog, base *types.Selection) (*SweepOutcome, error) {
	start := time.Now()

	spinner := r.w.NewSpinner(fmt.Sprintf("Computing %d scenarios...", len(cat.Scenarios)))
	spinner.Start()
	results, err := r.engine.Sweep(ctx, cat, base, cat.Scenarios)
	spinner.Stop(err == nil)

	if err != nil {
		r.w.Error("Sweep failed: %v", err)
		return nil, err
	}

	return &SweepOutcome{
		Catalog:  cat.Metadata,
		Results:  results,
		Duration: time.Since(start),
	}, nil
}

// Display shows the scenario comparison table
func (r *SweepRunner) Display(outcome *SweepOutcome) {
	r.w.Header(outcome.Catalog.Name + " Scenarios")

	if len(outcome.Results) == 0 {
		r.w.Warning("catalogue defines no scenarios")
		return
	}

	table := r.w.NewTable("Scenario", "Size", "Weeks", "Effort", "Man-days", "Rate", "Price").AlignRight(2, 3, 4, 5, 6)
	for _, sr := range outcome.Results {
		res := sr.Result
		d := res.Display()
		table.AddRow(
			sr.Scenario.Name,
			res.Size.String(),
			fmt.Sprintf("%d", res.DurationWeeks),
			Hours(res.TotalEffort),
			d.ManDays.StringFixed(1),
			Money(r.currency, d.BlendedRate),
			Money(r.currency, d.FinalPrice),
		)
	}
	table.Render()

	r.w.Println("")
	r.w.Debug("Completed in %s", outcome.Duration.Round(time.Millisecond))
}
