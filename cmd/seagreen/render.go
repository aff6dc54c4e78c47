package main

import (
	"fmt"
	"log"
	"slices"

	"github.com/spf13/cobra"

	"github.com/padangco/seagreen/render"
)

var renderArgs struct {
	chart string
	out   string
}

var renderCmd = &cobra.Command{
	Use:     "render",
	Short:   "Draw a chart as PNG",
	Example: `  seagreen render --chart deals --country Vietnam --out deals.png`,
	RunE:    runRender,
}

func init() {
	addSelectionFlags(renderCmd)
	renderCmd.Flags().StringVar(&renderArgs.chart, "chart", render.ChartHeatmap, "Chart: heatmap, treemap, stages, deals")
	renderCmd.Flags().StringVar(&renderArgs.out, "out", "", "PNG file to write (required)")
	renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(render.Charts, renderArgs.chart) {
		return fmt.Errorf("%w: %q", render.ErrUnknownChart, renderArgs.chart)
	}
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}
	_, d, _, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}

	w, closeOut, err := createOut(renderArgs.out)
	if err != nil {
		return err
	}
	if err := render.PNG(w, renderArgs.chart, d.Pass(sel)); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	log.Printf("📄 %s chart written to %s", renderArgs.chart, renderArgs.out)
	return nil
}
