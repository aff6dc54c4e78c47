package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/padangco/seagreen/dataset"
	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testPass(t *testing.T, countries ...string) *engine.Pass {
	t.Helper()
	ds := engine.Bind(dataset.NewStore(
		[]dataset.StartupRecord{
			{Industry: "Energy", Country: "Vietnam", Company: "A", FoundedYear: 2019, CompanyStage: "Seed"},
			{Industry: "Energy", Country: "Vietnam", Company: "B", FoundedYear: 2020, CompanyStage: "Seed"},
			{Industry: "Transportation", Country: "Vietnam", Company: "C", CompanyStage: "Series A"},
		},
		[]dataset.FundingPeriodRecord{
			{Country: "Vietnam", Period: "2023 Q1", FundingAmountMillionUSD: 2.5},
			{Country: "vietnam", Period: "2023 Q2", FundingAmountMillionUSD: 0},
		},
	))
	sel, err := filter.NewSelection(countries, "")
	if err != nil {
		t.Fatalf("NewSelection failed: %v", err)
	}
	return engine.NewPass(ds, sel)
}

func TestPNGCharts(t *testing.T) {
	p := testPass(t, "Vietnam")
	for _, kind := range Charts {
		t.Run(kind, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PNG(&buf, kind, p); err != nil {
				t.Fatalf("PNG(%s) failed: %v", kind, err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Errorf("output is not a PNG (%d bytes)", buf.Len())
			}
		})
	}
}

func TestPNGUnknownChart(t *testing.T) {
	err := PNG(&bytes.Buffer{}, "pie", testPass(t, "Vietnam"))
	if !errors.Is(err, ErrUnknownChart) {
		t.Errorf("err = %v, want ErrUnknownChart", err)
	}
}

func TestPNGEmptySelection(t *testing.T) {
	p := testPass(t)
	if err := PNG(&bytes.Buffer{}, ChartDeals, p); !errors.Is(err, engine.ErrEmptySelection) {
		t.Errorf("deals err = %v, want ErrEmptySelection", err)
	}
	if err := PNG(&bytes.Buffer{}, ChartHeatmap, p); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("heatmap err = %v, want ErrNothingToRender", err)
	}
	if err := PNG(&bytes.Buffer{}, ChartTreemap, p); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("treemap err = %v, want ErrNothingToRender", err)
	}
	// Ten zero bars still draw.
	var buf bytes.Buffer
	if err := PNG(&buf, ChartStages, p); err != nil {
		t.Errorf("stages err = %v", err)
	}
}

func TestConfig(t *testing.T) {
	p := testPass(t, "Vietnam")
	wantTypes := map[string]string{
		ChartHeatmap: "heatmap",
		ChartTreemap: "treemap",
		ChartStages:  "lollipop",
		ChartDeals:   "combo",
	}
	for _, kind := range Charts {
		cfg, err := Config(kind, p)
		if err != nil {
			t.Fatalf("Config(%s) failed: %v", kind, err)
		}
		if cfg.ChartType != wantTypes[kind] {
			t.Errorf("Config(%s).ChartType = %q, want %q", kind, cfg.ChartType, wantTypes[kind])
		}
	}

	if _, err := Config(ChartDeals, testPass(t)); !errors.Is(err, engine.ErrEmptySelection) {
		t.Errorf("deals err = %v, want ErrEmptySelection", err)
	}
	if _, err := Config("pie", p); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("err = %v, want ErrUnknownChart", err)
	}
}

func TestTreemapPNGSingleTile(t *testing.T) {
	cfg := engine.BuildTreemapChart([]engine.CategoryCount{
		{Label: "Energy", Count: 4},
		{Label: "Waste Management", Count: 0},
	})
	var buf bytes.Buffer
	if err := TreemapPNG(&buf, cfg); err != nil {
		t.Fatalf("TreemapPNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestSplitWeights(t *testing.T) {
	tests := []struct {
		values   []float64
		wantK    int
		wantFrac float64
	}{
		{[]float64{1, 1}, 1, 0.5},
		{[]float64{6, 1, 1}, 1, 0.75},
		{[]float64{3, 3, 1, 1}, 1, 0.375},
		{[]float64{2, 2, 2, 2}, 2, 0.5},
	}
	for _, tt := range tests {
		k, frac := splitWeights(tt.values)
		if k != tt.wantK || frac != tt.wantFrac {
			t.Errorf("splitWeights(%v) = %d, %v; want %d, %v", tt.values, k, frac, tt.wantK, tt.wantFrac)
		}
	}
}

func TestDealsPNGSinglePeriod(t *testing.T) {
	var buf bytes.Buffer
	err := DealsPNG(&buf, engine.DealSeries{
		Periods:       []string{"2024 Q1"},
		DealCounts:    []int{1},
		FundingTotals: []float64{0},
	})
	if err != nil {
		t.Fatalf("DealsPNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestTableXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := TableXLSX(&buf, testPass(t, "Vietnam").Table()); err != nil {
		t.Fatalf("TableXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(TableSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	// header + 3 startups + summary
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	if rows[0][0] != "Industry" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][7] != "2019" {
		t.Errorf("founded year = %q, want 2019", rows[1][7])
	}
	if rows[4][0] != "Total (3 startups)" {
		t.Errorf("summary = %v", rows[4])
	}
}

func TestTableXLSXTooManyColumns(t *testing.T) {
	// One past the last column a worksheet can hold.
	cols := make([]engine.Column, excelize.MaxColumns+1)
	for i := range cols {
		cols[i] = engine.Column{Key: "c", Label: "c", Type: "text"}
	}
	err := TableXLSX(&bytes.Buffer{}, &engine.TableData{Columns: cols})
	if err == nil || !strings.Contains(err.Error(), "write header") {
		t.Errorf("err = %v, want header write error", err)
	}
}
