package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/padangco/seagreen/engine"
)

var summaryArgs struct {
	format string
	view   string
	out    string
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print every view for a selection",
	Example: `  seagreen summary --country Vietnam --country Thailand
  seagreen summary --country Indonesia --stage Seed --format text
  seagreen summary --country Vietnam --format csv --view deals --out deals.csv`,
	RunE: runSummary,
}

func init() {
	addSelectionFlags(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryArgs.format, "format", "json", "Output format: json, pretty, yaml, text, csv")
	summaryCmd.Flags().StringVar(&summaryArgs.view, "view", csvViewTable, "View written by --format csv: table, treemap, stages, deals, heatmap")
	summaryCmd.Flags().StringVar(&summaryArgs.out, "out", "", "Write output to file instead of stdout")
	summaryCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "pretty", "yaml", "text", "csv"}, cobra.ShellCompDirectiveDefault
	})
	summaryCmd.RegisterFlagCompletionFunc("view", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{csvViewTable, csvViewTreemap, csvViewStages, csvViewDeals, csvViewHeatmap}, cobra.ShellCompDirectiveDefault
	})
}

func runSummary(cmd *cobra.Command, _ []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}
	_, d, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}
	p := d.Pass(sel)

	w, closeOut, err := createOut(summaryArgs.out)
	if err != nil {
		return err
	}
	defer closeOut()

	switch summaryArgs.format {
	case "csv":
		return writeCSV(w, p, summaryArgs.view)
	case "text":
		return writeText(w, newSummary(p, sel))
	case "yaml":
		return writeYAML(w, newSummary(p, sel))
	case "json", "pretty":
		return writeJSON(w, newSummary(p, sel), summaryArgs.format)
	default:
		return fmt.Errorf("unknown format %q", summaryArgs.format)
	}
}

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type summary struct {
	Countries   []string               `json:"countries" yaml:"countries"`
	Stage       string                 `json:"stage,omitempty" yaml:"stage,omitempty"`
	ValueBoxes  engine.ValueBoxes      `json:"valueBoxes" yaml:"valueBoxes"`
	Treemap     []engine.CategoryCount `json:"treemap" yaml:"treemap"`
	Stages      []engine.CategoryCount `json:"stages" yaml:"stages"`
	Heatmap     engine.Heatmap         `json:"heatmap" yaml:"heatmap"`
	Deals       []engine.PeriodTotal   `json:"deals,omitempty" yaml:"deals,omitempty"`
	DealsStatus string                 `json:"dealsStatus" yaml:"dealsStatus"`
}
