package engine

import (
	"math"
	"sort"
	"strconv"
)

// ============================================================================
// AGGREGATORS: Grouping, counting and reindexing via RecordView
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view) and keeps
// first-encountered order, which is what every stable tie-break relies on.
// ============================================================================

// ============================================================================
// GROUPING
// ============================================================================

// GroupBy groups a view by one dimension, in first-encountered order.
// Count is the group size; Value is left for the caller to aggregate.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// MODES AND COUNTS
// ============================================================================

// TopModes returns up to n most frequent non-empty values of a dimension.
// Ties keep first-encountered order.
func TopModes(view RecordView, dimension string, n int) []string {
	groups := GroupBy(view, dimension)
	nonEmpty := groups[:0]
	for _, g := range groups {
		if g.Key != "" {
			nonEmpty = append(nonEmpty, g)
		}
	}
	sort.SliceStable(nonEmpty, func(i, j int) bool { return nonEmpty[i].Count > nonEmpty[j].Count })

	if n < 0 {
		n = 0
	}
	if len(nonEmpty) > n {
		nonEmpty = nonEmpty[:n]
	}
	labels := make([]string, 0, len(nonEmpty))
	for _, g := range nonEmpty {
		labels = append(labels, g.Label)
	}
	return labels
}

// CountByCategory counts rows per category and reindexes onto categories:
// output has one entry per category, in the given order, 0 when absent.
// Values outside the category list are not counted.
func CountByCategory(view RecordView, dimension string, categories []string) []CategoryCount {
	counts := make(map[string]int, len(categories))
	for i := 0; i < view.Len(); i++ {
		counts[view.Dimension(i, dimension)]++
	}

	out := make([]CategoryCount, len(categories))
	for i, c := range categories {
		out[i] = CategoryCount{Label: c, Count: counts[c]}
	}
	return out
}

// CountEqual counts rows whose dimension equals value exactly.
func CountEqual(view RecordView, dimension, value string) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if view.Dimension(i, dimension) == value {
			n++
		}
	}
	return n
}

// ============================================================================
// CROSS TABULATION
// ============================================================================

// CrossTab counts rows per (row, column) dimension pair. Row and column keys
// each appear once, sorted ascending (numeric keys numerically); every cell
// is present. Rows with an empty key on either side are skipped.
func CrossTab(view RecordView, rowDim, colDim string) Matrix {
	type pair struct{ r, c string }
	counts := make(map[pair]int)
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)
	var rows, cols []string

	for i := 0; i < view.Len(); i++ {
		r, c := view.Dimension(i, rowDim), view.Dimension(i, colDim)
		if r == "" || c == "" {
			continue
		}
		counts[pair{r, c}]++
		if !rowSeen[r] {
			rowSeen[r] = true
			rows = append(rows, r)
		}
		if !colSeen[c] {
			colSeen[c] = true
			cols = append(cols, c)
		}
	}

	sortKeys(rows)
	sortKeys(cols)

	cells := make([][]int, len(rows))
	for ri, r := range rows {
		cells[ri] = make([]int, len(cols))
		for ci, c := range cols {
			cells[ri][ci] = counts[pair{r, c}]
		}
	}
	return Matrix{RowKeys: rows, ColKeys: cols, Cells: cells}
}

// sortKeys orders keys ascending: numerically when both sides are integers,
// byte-wise otherwise.
func sortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
}

// ============================================================================
// PERIOD SERIES
// ============================================================================

// GroupPeriods sums deal counts and funding per period, emitted in order.
// Periods in order with no rows are omitted; periods missing from order are
// appended in first-encountered order.
func GroupPeriods(view RecordView, order []string) []PeriodTotal {
	groups := GroupBy(view, DimPeriod)
	byKey := make(map[string]Group, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g
	}

	out := make([]PeriodTotal, 0, len(groups))
	emit := func(g Group) {
		out = append(out, PeriodTotal{
			Period: g.Key,
			Deals:  int(SumMeasure(g.View, MeasureDeals)),
			Amount: SumMeasure(g.View, MeasureFunding),
		})
		delete(byKey, g.Key)
	}

	for _, p := range order {
		if g, ok := byKey[p]; ok {
			emit(g)
		}
	}
	for _, g := range groups {
		if _, ok := byKey[g.Key]; ok {
			emit(g)
		}
	}
	return out
}

// ============================================================================
// MEASURES
// ============================================================================

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// MinMaxMeasure returns the smallest and largest non-zero value of a measure.
// ok is false when no row has a non-zero value.
func MinMaxMeasure(view RecordView, measure string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if v == 0 {
			continue
		}
		lo, hi, ok = math.Min(lo, v), math.Max(hi, v), true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct non-empty values for a dimension, in
// first-encountered order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
