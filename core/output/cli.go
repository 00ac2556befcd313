package output

import (
	"fmt"
	"io"
	"strings"

	"service-estimator/core/ui"
)

// CLIOptions tune the human-readable report
type CLIOptions struct {
	Currency        string
	NoColor         bool
	ShowAssumptions bool
}

// CLIFormatter renders an estimate for the terminal
type CLIFormatter struct {
	opts CLIOptions
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(opts CLIOptions) *CLIFormatter {
	if opts.Currency == "" {
		opts.Currency = "€"
	}
	return &CLIFormatter{opts: opts}
}

func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

func (f *CLIFormatter) money(amount int64) string {
	return ui.Money(f.opts.Currency, amount)
}

func (f *CLIFormatter) Render(out io.Writer, report *Report) error {
	w := ui.NewWriter(out, f.opts.NoColor)
	res := report.Result
	d := report.Display

	w.Header(report.Catalog.Name + " Estimate")

	summary := w.NewEstimateSummary()
	summary.FinalPrice = f.money(d.FinalPrice)
	summary.Size = res.Size.String()
	summary.DurationWeeks = res.DurationWeeks
	summary.TotalEffort = ui.Hours(res.TotalEffort)
	summary.ManDays = d.ManDays.StringFixed(1)
	if f.opts.ShowAssumptions {
		summary.Assumptions = len(res.Assumptions)
	}
	summary.Render()

	if res.SizingCriteria != nil {
		w.Println("")
		w.Info("%s: %s, %s", res.Size, res.SizingCriteria.Effort, res.SizingCriteria.Duration)
	}

	w.Println("")
	w.SubHeader("Effort")
	effort := w.NewTable("Source", "Hours").AlignRight(1)
	effort.AddRow("Base", ui.Hours(res.Effort.BaseHours))
	effort.AddRow("Scope areas", ui.Hours(res.Effort.ScopeHours))
	effort.AddRow("Parameters", ui.Hours(res.Effort.ParameterHours))
	effort.AddRow("Compliance", ui.Hours(res.Effort.ComplianceHours))
	effort.AddRow("Requirements", ui.Hours(res.Effort.RequirementHours))
	effort.AddRow("Raw effort", ui.Hours(res.RawEffort))
	effort.AddRow("Context multiplier", "×"+res.ContextMultiplier.String())
	effort.AddRow("Total effort", ui.Hours(res.TotalEffort))
	effort.Render()

	switch {
	case len(res.Deliverables) > 0:
		w.Println("")
		w.SubHeader("Deliverables")
		deliverables := w.NewTable("Scope area", "Category", "Hours").AlignRight(2)
		for _, dl := range res.Deliverables {
			deliverables.AddRow(dl.Name, dl.Category, ui.Hours(int64(dl.Hours)))
		}
		deliverables.Render()
	case len(res.SelectedScopes) > 0:
		// estimates saved before deliverables were recorded
		w.Println("")
		w.Println("  Scope: %s", strings.Join(res.SelectedScopes, ", "))
	}

	w.Println("")
	w.SubHeader("Team")
	team := w.NewTable("Role", "FTE", "Daily rate").AlignRight(1, 2)
	for _, line := range res.Team {
		team.AddRow(line.RoleName, line.FTE.String(), f.money(line.DailyRate.Round(0).IntPart()))
	}
	team.AddRow("Blended rate", "", f.money(d.BlendedRate))
	team.Render()

	w.Println("")
	w.SubHeader("Pricing")
	pricing := w.NewTable("Layer", "Amount").AlignRight(1)
	pricing.AddRow("Base cost", f.money(d.BaseCost))
	pricing.AddRow("Margin", "+"+f.money(d.MarginAmount))
	pricing.AddRow("Risk premium", "+"+f.money(d.RiskAmount))
	pricing.AddRow("Contingency", "+"+f.money(d.ContingencyAmount))
	if d.DiscountAmount != 0 {
		pricing.AddRow("Discount", "-"+f.money(d.DiscountAmount))
	}
	pricing.AddRow("Final price", f.money(d.FinalPrice))
	pricing.Render()

	if len(res.Phases) > 0 {
		w.Println("")
		w.SubHeader("Phases")
		phases := w.NewTable("Phase", "Duration")
		for _, p := range res.Phases {
			phases.AddRow(p.Name, p.Duration)
		}
		phases.Render()
	}

	if len(report.Notices) > 0 {
		w.Println("")
		for _, n := range report.Notices {
			w.Warning("%s", n)
		}
	}

	if f.opts.ShowAssumptions && len(res.Assumptions) > 0 {
		w.Println("")
		w.SubHeader("Assumptions")
		for _, a := range res.Assumptions {
			w.Println("  [%s] %s", a.Component, a.Message)
		}
	}

	if report.Metadata.EstimateID != "" {
		w.Println("")
		w.Success("Saved as %s", report.Metadata.EstimateID)
	}

	_, err := fmt.Fprintln(out)
	return err
}
