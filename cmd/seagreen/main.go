package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/padangco/seagreen/config"
	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/dataset"
	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

// ============================================================================
// SEAGREEN CLI: Southeast Asia green-economy startup dashboard
// ============================================================================

const version = "0.1.0"

var rootArgs struct {
	configPath string
	countries  []string
	stage      string
}

var rootCmd = &cobra.Command{
	Use:           "seagreen",
	Short:         "Southeast Asia green-economy startup dashboard",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootArgs.configPath, "config", "", "Path to YAML config file")
	rootCmd.AddCommand(serveCmd, summaryCmd, renderCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addSelectionFlags registers --country and --stage on cmd.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&rootArgs.countries, "country", nil, "Country to include (repeatable)")
	cmd.Flags().StringVar(&rootArgs.stage, "stage", "", "Funding stage for the single-stage count")
}

func selectionFromFlags() (filter.Selection, error) {
	return filter.NewSelection(rootArgs.countries, rootArgs.stage)
}

// setup loads config and datasets and builds the dispatcher.
// reg may be nil when metrics are not served.
func setup(ctx context.Context, reg prometheus.Registerer) (config.Config, *dashboard.Dispatcher, *dashboard.Metrics, error) {
	cfg, err := config.Load(rootArgs.configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	store, err := dataset.Load(ctx, cfg.DataSource())
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	opts := []dashboard.DispatcherOption{
		dashboard.WithCacheSize(cfg.CacheSize),
		dashboard.WithEngineOptions(
			engine.WithTopN(cfg.TopN),
			engine.WithLanguage(cfg.LanguageTag()),
		),
	}
	var m *dashboard.Metrics
	if reg != nil {
		m = dashboard.NewMetrics(reg)
		opts = append(opts, dashboard.WithMetrics(m))
	}

	d, err := dashboard.NewDispatcher(engine.Bind(store), opts...)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, d, m, nil
}

// createOut opens path for writing, or stdout when path is empty.
func createOut(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}
