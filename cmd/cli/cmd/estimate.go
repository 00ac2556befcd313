// Package cmd - estimate command
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"service-estimator/adapters/selection"
	"service-estimator/adapters/storage"
	corecatalog "service-estimator/core/catalog"
	"service-estimator/core/output"
	"service-estimator/internal/config"
	"service-estimator/internal/errors"
	"service-estimator/internal/logging"
)

var (
	outputFormat  string
	selectionFile string
	scenarioID    string
	saveEstimate  bool
	estimateLabel string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [catalog]",
	Short: "Compute an estimate for a service catalogue",
	Long: `Compute effort, size, team, duration and price for a catalogue.

The catalogue can be an .hcl, .yaml, .yml or .json file. Without one the
configured default is used, else the built-in Kubernetes platform catalogue.

Examples:
  service-estimator estimate
  service-estimator estimate catalogs/k8s.hcl --scenario enterprise
  service-estimator estimate --selection customer.yaml --save --label "v2"
  service-estimator estimate --format json catalogs/k8s.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	estimateCmd.Flags().StringVarP(&selectionFile, "selection", "s", "", "selection file (YAML)")
	estimateCmd.Flags().StringVar(&scenarioID, "scenario", "", "apply a catalogue scenario")
	estimateCmd.Flags().BoolVar(&saveEstimate, "save", false, "save the estimate to history")
	estimateCmd.Flags().StringVar(&estimateLabel, "label", "", "label for the saved estimate")
}

func runEstimate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	cfg := config.Get()

	cat, err := loadCatalog(args)
	if err != nil {
		return err
	}

	var file *selection.File
	if selectionFile != "" {
		if file, err = selection.Load(selectionFile); err != nil {
			return err
		}
	}
	state, notices, err := file.Apply(cat)
	if err != nil {
		return errors.Wrap(errors.TypeSelection, "apply selection file", err)
	}
	if scenarioID != "" {
		if err := state.ApplyScenario(scenarioID); err != nil {
			return err
		}
	}

	sel := state.Snapshot()
	result := newEngine().Compute(cat, sel)
	fingerprint := corecatalog.Fingerprint(cat)

	report := output.NewReport(cat, fingerprint, sel, result)
	report.Notices = notices
	report.Metadata = output.ReportMetadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	}

	if saveEstimate {
		store, openErr := openStore()
		if openErr != nil {
			return openErr
		}
		defer func() {
			err = multierr.Append(err, store.Close())
		}()

		stored := storage.NewStoredEstimate(cat, fingerprint, sel, result)
		stored.Label = estimateLabel
		if err := store.Save(ctx, stored); err != nil {
			return err
		}
		report.Metadata.EstimateID = stored.ID
		logging.Info("estimate saved", zap.String("id", stored.ID), zap.String("catalog", cat.Metadata.ID))
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := formatters().Get(output.Format(format))
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}

func formatters() *output.Registry {
	cfg := config.Get().Output
	return output.DefaultRegistry(output.CLIOptions{
		Currency:        cfg.CurrencySymbol,
		NoColor:         cfg.NoColor,
		ShowAssumptions: cfg.ShowAssumptions,
	})
}
