// Package cmd - scenarios command
package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"service-estimator/adapters/selection"
	"service-estimator/core/ui"
	"service-estimator/internal/config"
)

var (
	scenariosFormat    string
	scenariosSelection string
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [catalog]",
	Short: "Compare every catalogue scenario side by side",
	Long: `Apply each scenario of the catalogue on top of the base selection and
compute the estimates concurrently.

Examples:
  service-estimator scenarios
  service-estimator scenarios catalogs/k8s.hcl --selection customer.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenarios,
}

func init() {
	scenariosCmd.Flags().StringVarP(&scenariosFormat, "format", "f", "", "output format (cli, json)")
	scenariosCmd.Flags().StringVarP(&scenariosSelection, "selection", "s", "", "base selection file (YAML)")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Get()
	cat, err := loadCatalog(args)
	if err != nil {
		return err
	}

	var file *selection.File
	if scenariosSelection != "" {
		if file, err = selection.Load(scenariosSelection); err != nil {
			return err
		}
	}
	state, _, err := file.Apply(cat)
	if err != nil {
		return err
	}

	format := scenariosFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	if format == "json" {
		results, err := newEngine().Sweep(ctx, cat, state.Snapshot(), cat.Scenarios)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	w := ui.NewWriter(cmd.OutOrStdout(), cfg.Output.NoColor)
	if verbose {
		w.SetVerbosity(2)
	}
	runner := ui.NewSweepRunner(w, newEngine(), cfg.Output.CurrencySymbol)
	outcome, err := runner.Run(ctx, cat, state.Snapshot())
	if err != nil {
		return err
	}
	runner.Display(outcome)
	return nil
}
