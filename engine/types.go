package engine

import "slices"

// ============================================================================
// ENGINE TYPES: View results and render-ready shapes
// ============================================================================
// Every value here is produced from one Selection and never changed after.
// Accessors on Pass hand out copies, so results cached for one session
// cannot be altered by another.
// ============================================================================

// ============================================================================
// GROUP: Intermediate computation result
// ============================================================================

// Group is one bucket of a GroupBy.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// VIEW RESULTS
// ============================================================================

// Overview backs the three Overview value boxes.
type Overview struct {
	Count         int      `json:"count"`
	TopIndustries []string `json:"topIndustries"`
	TopActivities []string `json:"topActivities"`
}

// CategoryCount is one entry of a reindexed categorical series.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Matrix is a dense cross tabulation.
type Matrix struct {
	RowKeys []string `json:"rowKeys"`
	ColKeys []string `json:"colKeys"`
	Cells   [][]int  `json:"cells"` // Cells[row][col]
}

// Heatmap is the founding-year × industry count matrix.
type Heatmap struct {
	Industries []string `json:"industries"`
	Years      []int    `json:"years"`
	Cells      [][]int  `json:"cells"` // Cells[industry][year]
}

// Max returns the largest cell value (0 for an empty matrix).
func (h Heatmap) Max() int {
	m := 0
	for _, row := range h.Cells {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

func (h Heatmap) clone() Heatmap {
	cells := make([][]int, len(h.Cells))
	for i, row := range h.Cells {
		cells[i] = slices.Clone(row)
	}
	return Heatmap{
		Industries: slices.Clone(h.Industries),
		Years:      slices.Clone(h.Years),
		Cells:      cells,
	}
}

// StageCount is the single-stage value box.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// PeriodTotal is one period of the funding table.
type PeriodTotal struct {
	Period string  `json:"period"`
	Deals  int     `json:"deals"`
	Amount float64 `json:"amount"`
}

// DealSeries holds two aligned sequences keyed by Periods.
type DealSeries struct {
	Periods       []string  `json:"periods"`
	DealCounts    []int     `json:"dealCounts"`
	FundingTotals []float64 `json:"fundingTotals"` // million USD
}

func (d DealSeries) clone() DealSeries {
	return DealSeries{
		Periods:       slices.Clone(d.Periods),
		DealCounts:    slices.Clone(d.DealCounts),
		FundingTotals: slices.Clone(d.FundingTotals),
	}
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Y2Axis     string        `json:"y2Axis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Kind  string       `json:"kind,omitempty"` // "bar", "area", "marker", "cell"
	Axis  string       `json:"axis,omitempty"` // "y" or "y2"
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

func (t *TableData) clone() *TableData {
	if t == nil {
		return nil
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = slices.Clone(r)
	}
	out := &TableData{Title: t.Title, Columns: slices.Clone(t.Columns), Rows: rows}
	if t.Summary != nil {
		s := *t.Summary
		s.Values = make(map[string]string, len(t.Summary.Values))
		for k, v := range t.Summary.Values {
			s.Values[k] = v
		}
		out.Summary = &s
	}
	return out
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
