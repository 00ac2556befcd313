// Package cmd - history commands
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"service-estimator/adapters/storage"
	"service-estimator/core/output"
	"service-estimator/core/types"
	"service-estimator/core/ui"
	"service-estimator/internal/config"
	"service-estimator/internal/errors"
)

var (
	historyCatalog string
	historyLabel   string
	historyLimit   int
	historyFormat  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and compare saved estimates",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved estimates, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved estimate",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare <old-id> <new-id>",
	Short: "Compare two saved estimates",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistoryCompare,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved estimate",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCompareCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().StringVar(&historyCatalog, "catalog", "", "only estimates of this catalogue id")
	historyListCmd.Flags().StringVar(&historyLabel, "label", "", "only estimates with this label")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of estimates")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "output format (cli, json)")
}

// withStore opens the configured store for the duration of fn
func withStore(fn func(ctx context.Context, store storage.Store) error) (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()
	return fn(context.Background(), store)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a unique ID prefix, as printed by history list
func resolveID(ctx context.Context, store storage.Store, id string) (string, error) {
	if _, err := store.Get(ctx, id); err == nil {
		return id, nil
	} else if !errors.IsType(err, errors.TypeNotFound) {
		return "", err
	}

	all, err := store.List(ctx, nil)
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range all {
		if strings.HasPrefix(e.ID, id) {
			if match != "" {
				return "", errors.Newf(errors.TypeInput, "estimate id %q is ambiguous", id)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", errors.NotFound("estimate", id)
	}
	return match, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := config.Get().Output
	return withStore(func(ctx context.Context, store storage.Store) error {
		estimates, err := store.List(ctx, &storage.ListFilter{
			CatalogID: historyCatalog,
			Label:     historyLabel,
			Limit:     historyLimit,
		})
		if err != nil {
			return err
		}

		w := ui.NewWriter(cmd.OutOrStdout(), cfg.NoColor)
		if len(estimates) == 0 {
			w.Info("No saved estimates")
			return nil
		}

		table := w.NewTable("ID", "Saved", "Catalogue", "Label", "Size", "Effort", "Price").AlignRight(5, 6)
		for _, e := range estimates {
			table.AddRow(
				shortID(e.ID),
				humanize.Time(e.CreatedAt),
				e.CatalogID,
				e.Label,
				e.Size.String(),
				ui.Hours(e.TotalEffort),
				ui.Money(cfg.CurrencySymbol, e.FinalPrice.Round(0).IntPart()),
			)
		}
		table.Render()
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, store storage.Store) error {
		id, err := resolveID(ctx, store, args[0])
		if err != nil {
			return err
		}
		e, err := store.Get(ctx, id)
		if err != nil {
			return err
		}

		cat := &types.Catalog{Metadata: types.Metadata{ID: e.CatalogID, Name: e.CatalogName}}
		report := output.NewReport(cat, e.Fingerprint, e.Selection, e.Result)
		report.Metadata = output.ReportMetadata{
			Timestamp:  e.CreatedAt.Format(time.RFC3339),
			Version:    Version,
			EstimateID: e.ID,
		}

		format := historyFormat
		if format == "" {
			format = config.Get().Output.DefaultFormat
		}
		formatter, err := formatters().Get(output.Format(format))
		if err != nil {
			return err
		}
		return formatter.Render(cmd.OutOrStdout(), report)
	})
}

func runHistoryCompare(cmd *cobra.Command, args []string) error {
	cfg := config.Get().Output
	return withStore(func(ctx context.Context, store storage.Store) error {
		oldID, err := resolveID(ctx, store, args[0])
		if err != nil {
			return err
		}
		newID, err := resolveID(ctx, store, args[1])
		if err != nil {
			return err
		}

		cmp, err := store.Compare(ctx, oldID, newID)
		if err != nil {
			return err
		}
		oldEst, err := store.Get(ctx, oldID)
		if err != nil {
			return err
		}
		newEst, err := store.Get(ctx, newID)
		if err != nil {
			return err
		}

		money := func(amount int64) string { return ui.Money(cfg.CurrencySymbol, amount) }
		w := ui.NewWriter(cmd.OutOrStdout(), cfg.NoColor)
		diff := w.NewEstimateDiff()
		diff.OldLabel = describe(oldEst)
		diff.NewLabel = describe(newEst)
		diff.OldPrice = money(cmp.OldPrice.Round(0).IntPart())
		diff.NewPrice = money(cmp.NewPrice.Round(0).IntPart())
		diff.PriceChange = money(cmp.PriceDelta.Round(0).IntPart())
		diff.PercentDelta = cmp.DeltaPercent.StringFixed(2)
		diff.OldEffort = ui.Hours(cmp.OldEffort)
		diff.NewEffort = ui.Hours(cmp.NewEffort)
		diff.EffortChange = fmt.Sprintf("%+dh", cmp.EffortDelta)
		diff.OldSize = cmp.OldSize.String()
		diff.NewSize = cmp.NewSize.String()
		diff.IsIncrease = cmp.PriceDelta.IsPositive()
		diff.CatalogDrift = !cmp.SameCatalog
		diff.Render()
		return nil
	})
}

func describe(e *storage.StoredEstimate) string {
	if e.Label != "" {
		return fmt.Sprintf("%s (%s)", e.Label, shortID(e.ID))
	}
	return shortID(e.ID)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, store storage.Store) error {
		id, err := resolveID(ctx, store, args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		return nil
	})
}
