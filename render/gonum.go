package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/padangco/seagreen/engine"
)

// pixels converts a pixel count to a vg length at 96 dpi.
func pixels(n int) vg.Length { return vg.Length(n) * vg.Inch / 96 }

// ============================================================================
// HEATMAP
// ============================================================================

// heatGrid adapts a Heatmap to plotter.GridXYZ: columns are years,
// rows are industries, both at integer positions.
type heatGrid struct{ h engine.Heatmap }

func (g heatGrid) Dims() (c, r int)   { return len(g.h.Years), len(g.h.Industries) }
func (g heatGrid) Z(c, r int) float64 { return float64(g.h.Cells[r][c]) }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

// HeatmapPNG draws the founding-year heatmap.
func HeatmapPNG(w io.Writer, h engine.Heatmap) error {
	if len(h.Industries) == 0 || len(h.Years) == 0 {
		return ErrNothingToRender
	}

	p := plot.New()
	p.Title.Text = "Founded Year of Startups by Industry"
	p.X.Label.Text = engine.LabelFoundedYear
	p.Y.Label.Text = engine.LabelIndustry

	hm := plotter.NewHeatMap(heatGrid{h}, palette.Heat(12, 1))
	// An all-equal matrix would give a zero-width colour range.
	hm.Min = 0
	hm.Max = math.Max(float64(h.Max()), 1)
	p.Add(hm)

	years := make([]string, len(h.Years))
	for i, y := range h.Years {
		years[i] = strconv.Itoa(y)
	}
	p.NominalX(years...)
	p.NominalY(h.Industries...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	return writePNG(w, p)
}

// ============================================================================
// STAGE BARS
// ============================================================================

// StagesPNG draws startups per funding stage as a bar chart.
func StagesPNG(w io.Writer, counts []engine.CategoryCount) error {
	if len(counts) == 0 {
		return ErrNothingToRender
	}

	p := plot.New()
	p.Title.Text = "Startups by Funding Stages"
	p.X.Label.Text = engine.LabelFundingStage
	p.Y.Label.Text = engine.LabelStartups

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	peak := 0.0
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = c.Label
		peak = math.Max(peak, values[i])
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("stage bars: %w", err)
	}
	bars.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.Add(plotter.NewGrid())

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0
	p.Y.Max = math.Max(peak*1.15, 1)

	return writePNG(w, p)
}

func writePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(pixels(DefaultWidth), pixels(DefaultHeight), "png")
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
