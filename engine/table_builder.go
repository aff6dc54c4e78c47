package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/padangco/seagreen/dataset"
)

// ============================================================================
// TABLE BUILDER: Produces TableData for the Query tab
// ============================================================================
// One row per startup, columns in source-schema order. Column discovery uses
// the startup schema so the table shape never depends on the data.
// ============================================================================

// ErrUnknownColumn is returned for a table query on a column the table lacks.
var ErrUnknownColumn = errors.New("unknown table column")

// BuildStartupTable lists every row of view.
func BuildStartupTable(view RecordView) *TableData {
	columns := make([]Column, 0, len(dataset.StartupSchema.Columns))
	for _, c := range dataset.StartupSchema.Columns {
		col := Column{Key: c.Key, Label: c.DisplayName, Type: "text", Align: "left"}
		if c.Key == DimFoundedYear {
			col.Type, col.Align = "number", "right"
		}
		columns = append(columns, col)
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, view.Dimension(i, c.Key))
		}
		rows = append(rows, row)
	}

	summary := &Summary{
		Label:  fmt.Sprintf("Total (%d startups)", view.Len()),
		Values: map[string]string{},
	}
	if lo, hi, ok := MinMaxMeasure(view, MeasureFoundedYear); ok {
		summary.Values[DimFoundedYear] = fmt.Sprintf("%d–%d", int(lo), int(hi))
	}

	return &TableData{
		Title:   "Southeast Asia Green Economy",
		Columns: columns,
		Rows:    rows,
		Summary: summary,
	}
}

// ============================================================================
// TABLE QUERY: per-column typing filters
// ============================================================================

// TableQuery narrows the table the way the grid's header filters do:
// case-insensitive substring per column, plus an inclusive year range.
// Zero MinYear/MaxYear means unbounded.
type TableQuery struct {
	Contains map[string]string `json:"contains,omitempty"`
	MinYear  int               `json:"minYear,omitempty"`
	MaxYear  int               `json:"maxYear,omitempty"`
}

// IsEmpty reports whether the query filters nothing.
func (q TableQuery) IsEmpty() bool {
	for _, v := range q.Contains {
		if v != "" {
			return false
		}
	}
	return q.MinYear == 0 && q.MaxYear == 0
}

// ApplyTableQuery filters view by q. Unknown column keys fail with ErrUnknownColumn.
func ApplyTableQuery(view RecordView, q TableQuery) (RecordView, error) {
	known := make(map[string]bool)
	for _, k := range view.DimensionKeys() {
		known[k] = true
	}
	needles := make(map[string]string, len(q.Contains))
	for col, v := range q.Contains {
		if !known[col] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		if v != "" {
			needles[col] = strings.ToLower(v)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matchesQuery(view, i, needles, q.MinYear, q.MaxYear) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices), nil
}

func matchesQuery(view RecordView, i int, needles map[string]string, minYear, maxYear int) bool {
	for col, needle := range needles {
		if !strings.Contains(strings.ToLower(view.Dimension(i, col)), needle) {
			return false
		}
	}
	if minYear == 0 && maxYear == 0 {
		return true
	}
	year := int(view.Measure(i, MeasureFoundedYear))
	if year == 0 {
		return false
	}
	if minYear != 0 && year < minYear {
		return false
	}
	if maxYear != 0 && year > maxYear {
		return false
	}
	return true
}
