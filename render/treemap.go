package render

import (
	"cmp"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/padangco/seagreen/engine"
)

// ============================================================================
// TREEMAP
// ============================================================================
// Tiles are laid out by recursive bisection: the sorted tiles are split into
// two runs of near-equal weight and the rectangle is cut along its longer
// side in the same proportion.
// ============================================================================

type treemapTile struct {
	label string
	value float64
	color color.Color
}

// TreemapPNG draws the first series of cfg as a treemap, one tile per
// non-zero point, coloured from cfg.Colors by point index.
func TreemapPNG(w io.Writer, cfg *engine.ChartConfig) error {
	if len(cfg.Series) == 0 {
		return ErrNothingToRender
	}
	var tiles []treemapTile
	for i, pt := range cfg.Series[0].Data {
		if pt.Value <= 0 {
			continue
		}
		tiles = append(tiles, treemapTile{label: pt.Label, value: pt.Value, color: paletteColor(cfg.Colors, i)})
	}
	if len(tiles) == 0 {
		return ErrNothingToRender
	}
	slices.SortStableFunc(tiles, func(a, b treemapTile) int { return cmp.Compare(b.value, a.value) })

	p := plot.New()
	p.Title.Text = cfg.Title
	p.HideAxes()
	p.Add(treemapPlotter{tiles: tiles})

	return writePNG(w, p)
}

// treemapPlotter implements plot.Plotter.
type treemapPlotter struct{ tiles []treemapTile }

func (t treemapPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	label := plt.X.Tick.Label
	label.Color = color.White
	label.Font.Size = vg.Points(12)
	label.XAlign = draw.XCenter
	label.YAlign = draw.YCenter
	layoutTiles(c, label, t.tiles, c.Rectangle)
}

func layoutTiles(c draw.Canvas, label draw.TextStyle, tiles []treemapTile, r vg.Rectangle) {
	switch len(tiles) {
	case 0:
		return
	case 1:
		drawTile(c, label, tiles[0], r)
		return
	}

	values := make([]float64, len(tiles))
	for i, tile := range tiles {
		values[i] = tile.value
	}
	k, frac := splitWeights(values)

	size := r.Size()
	a, b := r, r
	if size.X >= size.Y {
		x := r.Min.X + vg.Length(frac)*size.X
		a.Max.X, b.Min.X = x, x
	} else {
		// Heavier run on top.
		y := r.Max.Y - vg.Length(frac)*size.Y
		a.Min.Y, b.Max.Y = y, y
	}
	layoutTiles(c, label, tiles[:k], a)
	layoutTiles(c, label, tiles[k:], b)
}

func drawTile(c draw.Canvas, label draw.TextStyle, tile treemapTile, r vg.Rectangle) {
	pts := []vg.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
	c.FillPolygon(tile.color, pts)
	c.StrokeLines(draw.LineStyle{Color: color.White, Width: vg.Points(2)}, append(pts, pts[0]))

	txt := fmt.Sprintf("%s\n%d", tile.label, int(tile.value))
	size := r.Size()
	if label.Width(txt) < size.X && label.Height(txt) < size.Y {
		center := vg.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
		c.FillText(label, center, txt)
	}
}

// splitWeights picks the cut k (1 <= k < len(values)) whose prefix weight is
// closest to half the total, and returns the prefix share of the total.
// values must hold at least two positive numbers.
func splitWeights(values []float64) (k int, frac float64) {
	total := 0.0
	for _, v := range values {
		total += v
	}
	k, best, acc := 1, math.Inf(1), 0.0
	prefix := 0.0
	for i := 0; i < len(values)-1; i++ {
		acc += values[i]
		if d := math.Abs(acc - total/2); d < best {
			k, best, prefix = i+1, d, acc
		}
	}
	return k, prefix / total
}
