package engine

import "strconv"

// ============================================================================
// CHART BUILDER: Produces ChartConfig from view results
// ============================================================================
// Chart configs are render-ready descriptions; drawing is left to whichever
// charting collaborator consumes them (see package render for PNG output).
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Series colors of the deal chart.
const (
	FundingAreaColor = "#FFA07A" // lightsalmon
	DealBarColor     = "#90EE90" // lightgreen
	StageMarkerColor = "#87CEEB" // skyblue
)

// Axis and series labels shared by chart configs and rendered charts.
const (
	LabelStartups      = "Number of Startups"
	LabelFundingStage  = "Funding Stage"
	LabelFundingAmount = "Funding Amount (Million USD)"
	LabelDeals         = "Number of Deals"
	LabelPeriod        = "Period"
	LabelFoundedYear   = "Founded Year"
	LabelIndustry      = "Industry"
)

// BuildTreemapChart describes the industry treemap.
func BuildTreemapChart(counts []CategoryCount) *ChartConfig {
	series := categorySeries(LabelStartups, "", counts)
	return &ChartConfig{
		ChartType:  "treemap",
		Title:      "Number of Startups by Industry",
		Series:     []ChartSeries{series},
		Colors:     assignColors(len(counts)),
		ShowLegend: false,
	}
}

// BuildStageChart describes the funding-stage lollipop chart.
func BuildStageChart(counts []CategoryCount) *ChartConfig {
	series := categorySeries(LabelStartups, "marker", counts)
	series.Color = StageMarkerColor
	return &ChartConfig{
		ChartType: "lollipop",
		Title:     "Startups by Funding Stages",
		XAxis:     LabelFundingStage,
		YAxis:     LabelStartups,
		Series:    []ChartSeries{series},
		ShowGrid:  true,
	}
}

// BuildDealChart describes the dual-axis deal volume/value chart.
func BuildDealChart(d DealSeries) *ChartConfig {
	amounts := make([]ChartPoint, len(d.Periods))
	deals := make([]ChartPoint, len(d.Periods))
	for i, p := range d.Periods {
		amounts[i] = ChartPoint{Label: p, Value: RoundTo2(d.FundingTotals[i])}
		deals[i] = ChartPoint{Label: p, Value: float64(d.DealCounts[i])}
	}
	return &ChartConfig{
		ChartType: "combo",
		Title:     "Time Horizon of Deal Volume and Deal Value",
		XAxis:     LabelPeriod,
		YAxis:     LabelFundingAmount,
		Y2Axis:    LabelDeals,
		Series: []ChartSeries{
			{Name: LabelFundingAmount, Kind: "area", Axis: "y", Data: amounts, Color: FundingAreaColor},
			{Name: LabelDeals, Kind: "bar", Axis: "y2", Data: deals, Color: DealBarColor},
		},
		Colors:     []string{FundingAreaColor, DealBarColor},
		ShowLegend: true,
	}
}

// BuildHeatmapChart describes the founding-year heatmap, one series per industry.
func BuildHeatmapChart(h Heatmap) *ChartConfig {
	series := make([]ChartSeries, len(h.Industries))
	for i, industry := range h.Industries {
		points := make([]ChartPoint, len(h.Years))
		for j, y := range h.Years {
			points[j] = ChartPoint{Label: strconv.Itoa(y), Value: float64(h.Cells[i][j])}
		}
		series[i] = ChartSeries{Name: industry, Kind: "cell", Data: points}
	}
	return &ChartConfig{
		ChartType: "heatmap",
		Title:     "Founded Year of Startups by Industry",
		XAxis:     LabelFoundedYear,
		YAxis:     LabelIndustry,
		Series:    series,
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func categorySeries(name, kind string, counts []CategoryCount) ChartSeries {
	points := make([]ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, ChartPoint{Label: c.Label, Value: float64(c.Count)})
	}
	return ChartSeries{Name: name, Kind: kind, Data: points}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
