// Package cmd - catalog command
package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	corecatalog "service-estimator/core/catalog"
	"service-estimator/core/dependency"
	"service-estimator/core/types"
	"service-estimator/core/ui"
	"service-estimator/internal/config"
)

var catalogFormat string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect service catalogues",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [catalog]",
	Short: "Print a catalogue after defaults are applied",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogShowCmd.Flags().StringVarP(&catalogFormat, "format", "f", "cli", "output format (cli, json)")
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args)
	if err != nil {
		return err
	}

	if catalogFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	}

	cfg := config.Get().Output
	w := ui.NewWriter(cmd.OutOrStdout(), cfg.NoColor)
	renderCatalog(w, cat, cfg.CurrencySymbol)
	return nil
}

func renderCatalog(w *ui.Writer, cat *types.Catalog, currency string) {
	w.Header(cat.Metadata.Name)
	w.Println("  ID:          %s", cat.Metadata.ID)
	if cat.Metadata.Version != "" {
		w.Println("  Version:     %s", cat.Metadata.Version)
	}
	if cat.Metadata.Category != "" {
		w.Println("  Category:    %s", cat.Metadata.Category)
	}
	w.Println("  Fingerprint: %s", corecatalog.Fingerprint(cat))
	w.Println("  Base effort: %s", ui.Hours(cat.BaseHours()))

	validator := dependency.New(cat.ScopeAreas)
	if len(cat.ScopeAreas) > 0 {
		w.Println("")
		w.SubHeader("Scope areas")
		table := w.NewTable("ID", "Name", "Hours", "Requires", "").AlignRight(2)
		for _, a := range cat.ScopeAreas {
			flag := ""
			switch {
			case a.Required:
				flag = "required"
			case validator.Locked(a.ID):
				flag = "locked"
			}
			table.AddRow(a.ID, a.Name, ui.Hours(int64(a.Hours)), strings.Join(a.Requires, ", "), flag)
		}
		table.Render()
	}

	if params := cat.Parameters(); len(params) > 0 {
		w.Println("")
		w.SubHeader("Parameters")
		table := w.NewTable("ID", "Option", "Extra", "Default")
		for _, p := range params {
			for i, o := range p.Options {
				id := ""
				if i == 0 {
					id = p.ID
				}
				extra := ""
				if o.ExtraHours != nil {
					extra = "+" + ui.Hours(int64(*o.ExtraHours))
				}
				def := ""
				if o.Value == p.Default {
					def = "●"
				}
				table.AddRow(id, o.Value, extra, def)
			}
		}
		table.Render()
	}

	if len(cat.ComplianceFactors) > 0 {
		w.Println("")
		w.SubHeader("Compliance factors")
		table := w.NewTable("ID", "Label", "Hours").AlignRight(2)
		for _, f := range cat.ComplianceFactors {
			hours := ui.Hours(int64(f.EffectiveHours()))
			if f.Hours == nil {
				hours += " (default)"
			}
			table.AddRow(f.ID, f.Label, hours)
		}
		table.Render()
	}

	w.Println("")
	w.SubHeader("Context multipliers")
	ctxTable := w.NewTable("Category", "Option", "Adjustment").AlignRight(2)
	for _, c := range cat.ContextMultipliers {
		for i, o := range c.Options {
			id := ""
			if i == 0 {
				id = c.ID
			}
			ctxTable.AddRow(id, o.Key, o.Adjustment.Shift(2).String()+"%")
		}
	}
	ctxTable.Render()

	w.Println("")
	w.SubHeader("Roles")
	roles := w.NewTable("ID", "Name", "Daily rate", "S", "M", "L").AlignRight(2, 3, 4, 5)
	for _, r := range cat.Roles {
		name := r.Name
		if r.IsPrimary {
			name += " *"
		}
		row := []string{r.ID, name, ui.Money(currency, r.DailyRate.Round(0).IntPart())}
		for _, tier := range types.AllTiers() {
			row = append(row, cat.TeamComposition[tier][r.ID].String())
		}
		roles.AddRow(row...)
	}
	roles.Render()

	p := cat.Pricing
	w.Println("")
	w.SubHeader("Pricing")
	w.Println("  Margin %s%%, risk premium %s%%, contingency %s%%, discount %s%%, %d hours per day",
		p.Margin, p.RiskPremium, p.Contingency, p.Discount, p.HoursPerDay)

	if len(cat.Scenarios) > 0 {
		w.Println("")
		w.SubHeader("Scenarios")
		for _, sc := range cat.Scenarios {
			w.Println("  %-12s %s", sc.ID, sc.Description)
		}
	}
	w.Println("")
}
