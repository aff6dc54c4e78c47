package render

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/padangco/seagreen/engine"
)

// DealsPNG draws funding per period as an area on the left axis and deal
// counts as bars on the right axis.
func DealsPNG(w io.Writer, d engine.DealSeries) error {
	n := len(d.Periods)
	if n == 0 {
		return ErrNothingToRender
	}

	xs := make([]float64, n)
	deals := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, p := range d.Periods {
		xs[i] = float64(i)
		deals[i] = float64(d.DealCounts[i])
		ticks[i] = chart.Tick{Value: float64(i), Label: p}
	}
	amounts := slices.Clone(d.FundingTotals)

	area := hexColor(engine.FundingAreaColor)
	bar := hexColor(engine.DealBarColor)

	ch := chart.Chart{
		Title:      "Time Horizon of Deal Volume and Deal Value",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 60}},
		XAxis: chart.XAxis{
			Name:  engine.LabelPeriod,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  engine.LabelFundingAmount,
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(amounts)},
		},
		YAxisSecondary: chart.YAxis{
			Name:  engine.LabelDeals,
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(deals)},
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:  engine.LabelDeals,
				YAxis: chart.YAxisSecondary,
				Style: chart.Style{StrokeColor: bar, FillColor: bar, StrokeWidth: 1},
				InnerSeries: chart.ContinuousSeries{
					XValues: xs,
					YValues: deals,
				},
			},
			chart.ContinuousSeries{
				Name:    engine.LabelFundingAmount,
				XValues: xs,
				YValues: amounts,
				Style: chart.Style{
					StrokeColor: area,
					StrokeWidth: 2,
					FillColor:   area.WithAlpha(128),
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render deal chart: %w", err)
	}
	return nil
}

// headroom is the axis maximum for values: 10% above the peak, at least 1.
func headroom(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	return math.Max(peak*1.1, 1)
}

// hexColor parses a "#RRGGBB" chart colour.
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// paletteColor returns colors[i], or gray when the palette is short.
func paletteColor(colors []string, i int) drawing.Color {
	if i < len(colors) {
		return hexColor(colors[i])
	}
	return drawing.ColorFromHex("A9A9A9")
}
