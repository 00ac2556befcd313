// Package cmd provides the CLI commands for service-estimator.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"service-estimator/adapters/catalog"
	"service-estimator/adapters/storage"
	"service-estimator/core/engine"
	"service-estimator/core/types"
	"service-estimator/internal/config"
	"service-estimator/internal/errors"
	"service-estimator/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "service-estimator",
	Short: "Size and price consulting engagements",
	Long: `service-estimator turns a service catalogue and a selection of scope,
parameters and context into an effort, team, duration and price estimate.

Every figure is reproducible: the same catalogue and selection always
produce the same estimate.

Examples:
  service-estimator estimate
  service-estimator estimate catalogs/k8s.hcl --selection customer.yaml
  service-estimator scenarios catalogs/k8s.hcl
  service-estimator history compare <old-id> <new-id>`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.service-estimator/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func initConfig() {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if noColor {
		cfg.Output.NoColor = true
		cfg.Logging.NoColor = true
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog reads the catalogue named on the command line, else the
// configured default, else the built-in one
func loadCatalog(args []string) (*types.Catalog, error) {
	path := config.Get().Catalog.Path
	if len(args) > 0 {
		path = args[0]
	}
	return catalog.Load(path)
}

func newEngine() *engine.Engine {
	return engine.New(logging.Named("engine"), engine.Config{
		SweepWorkers: config.Get().Engine.SweepWorkers,
	})
}

func openStore() (storage.Store, error) {
	cfg := config.Get().Storage
	return storage.StoreFactory(storage.Backend(cfg.Backend), map[string]string{"path": cfg.Path})
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "service-estimator version %s\n", Version)
	},
}

var configForce bool

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return errors.New(errors.TypeConfig, "config file already exists: "+path+" (use --force)")
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}
