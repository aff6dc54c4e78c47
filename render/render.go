// Package render draws view results as PNG charts and XLSX workbooks.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/padangco/seagreen/engine"
)

// Chart kinds.
const (
	ChartHeatmap = "heatmap"
	ChartTreemap = "treemap"
	ChartStages  = "stages"
	ChartDeals   = "deals"
)

// Chart kinds in menu order.
var Charts = []string{ChartHeatmap, ChartTreemap, ChartStages, ChartDeals}

var (
	// ErrUnknownChart is returned for a chart kind not in Charts.
	ErrUnknownChart = errors.New("unknown chart")

	// ErrNothingToRender is returned when a view has no cells to draw.
	ErrNothingToRender = errors.New("nothing to render")
)

// Default output size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

// PNG draws the named chart for p. Deal charts return engine.ErrEmptySelection
// when the selection has no funding rows.
func PNG(w io.Writer, kind string, p *engine.Pass) error {
	switch kind {
	case ChartHeatmap:
		return HeatmapPNG(w, p.Heatmap())
	case ChartTreemap:
		return TreemapPNG(w, engine.BuildTreemapChart(p.Treemap()))
	case ChartStages:
		return StagesPNG(w, p.StageDistribution())
	case ChartDeals:
		d, err := p.Deals()
		if err != nil {
			return err
		}
		return DealsPNG(w, d)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
}

// Config returns the chart description of the named chart for p, the same
// data PNG draws. Deal charts return engine.ErrEmptySelection when the
// selection has no funding rows.
func Config(kind string, p *engine.Pass) (*engine.ChartConfig, error) {
	switch kind {
	case ChartHeatmap:
		return engine.BuildHeatmapChart(p.Heatmap()), nil
	case ChartTreemap:
		return engine.BuildTreemapChart(p.Treemap()), nil
	case ChartStages:
		return engine.BuildStageChart(p.StageDistribution()), nil
	case ChartDeals:
		d, err := p.Deals()
		if err != nil {
			return nil, err
		}
		return engine.BuildDealChart(d), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
}
