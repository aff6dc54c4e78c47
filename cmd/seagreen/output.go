package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

// CSV views.
const (
	csvViewTable   = "table"
	csvViewTreemap = "treemap"
	csvViewStages  = "stages"
	csvViewDeals   = "deals"
	csvViewHeatmap = "heatmap"
)

func newSummary(p *engine.Pass, sel filter.Selection) summary {
	s := summary{
		Countries:   sel.Countries(),
		ValueBoxes:  engine.BuildValueBoxes(p, sel),
		Treemap:     p.Treemap(),
		Stages:      p.StageDistribution(),
		Heatmap:     p.Heatmap(),
		DealsStatus: dashboard.StatusOK,
	}
	s.Stage, _ = sel.Stage()

	d, err := p.Deals()
	if err != nil {
		s.DealsStatus = dashboard.StatusSelectionRequired
		return s
	}
	for i, period := range d.Periods {
		s.Deals = append(s.Deals, engine.PeriodTotal{
			Period: period,
			Deals:  d.DealCounts[i],
			Amount: engine.RoundTo2(d.FundingTotals[i]),
		})
	}
	return s
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeText(w io.Writer, s summary) error {
	countries := strings.Join(s.Countries, ", ")
	if countries == "" {
		countries = "(none)"
	}
	lines := []string{
		"Countries:       " + countries,
		"Total startups:  " + s.ValueBoxes.TotalStartups,
		"Top industries:  " + strings.Join(s.ValueBoxes.TopIndustries, ", "),
		"Top activities:  " + strings.Join(s.ValueBoxes.TopActivities, ", "),
		"Stage:           " + s.ValueBoxes.StageLine,
		"",
		"Funding stages:",
	}
	for _, c := range s.Stages {
		lines = append(lines, fmt.Sprintf("  %-16s %d", c.Label, c.Count))
	}

	lines = append(lines, "", "Deals:")
	if s.DealsStatus != dashboard.StatusOK {
		lines = append(lines, "  "+engine.SelectionRequiredText)
	}
	for _, d := range s.Deals {
		lines = append(lines, fmt.Sprintf("  %-10s %3d deals  %s M USD", d.Period, d.Deals, fmtNum(d.Amount)))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// ============================================================================
// CSV OUTPUT: Sheets-ready view data
// ============================================================================

func writeCSV(w io.Writer, p *engine.Pass, view string) error {
	cw := csv.NewWriter(w)

	switch view {
	case csvViewTable:
		writeTableCSV(cw, p.Table())
	case csvViewTreemap:
		writeChartCSV(cw, engine.BuildTreemapChart(p.Treemap()))
	case csvViewStages:
		writeChartCSV(cw, engine.BuildStageChart(p.StageDistribution()))
	case csvViewDeals:
		d, err := p.Deals()
		if err != nil {
			return err
		}
		writeChartCSV(cw, engine.BuildDealChart(d))
	case csvViewHeatmap:
		// One row per founding year, one column per industry.
		writeChartCSV(cw, engine.BuildHeatmapChart(p.Heatmap()))
	default:
		return fmt.Errorf("unknown csv view %q", view)
	}

	cw.Flush()
	return cw.Error()
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) {
	xLabel := chart.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}

	// Single series → two columns
	if len(chart.Series) == 1 {
		yLabel := chart.YAxis
		if yLabel == "" {
			yLabel = chart.Series[0].Name
		}
		cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			cw.Write([]string{d.Label, fmtNum(d.Value)})
		}
		return
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	cw.Write(headers)

	if len(chart.Series) == 0 {
		return
	}
	for i, d := range chart.Series[0].Data {
		row := []string{d.Label}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) {
	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
}

// ============================================================================
// JSON / YAML OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return enc.Close()
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
