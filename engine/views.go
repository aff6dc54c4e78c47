package engine

import "github.com/padangco/seagreen/filter"

// ============================================================================
// VIEW FUNCTIONS: one-shot forms of the Pass methods
// ============================================================================
// Each is a pure function of (Datasets, Selection). Callers deriving several
// views from one selection should build a Pass once instead.
// ============================================================================

// RowCount is the number of startups in the selected countries.
func RowCount(ds *Datasets, sel filter.Selection) int {
	return NewPass(ds, sel).Count()
}

// TopIndustries returns the three most common industries.
func TopIndustries(ds *Datasets, sel filter.Selection) []string {
	return NewPass(ds, sel).TopIndustries()
}

// TopActivities returns the three most common primary activities.
func TopActivities(ds *Datasets, sel filter.Selection) []string {
	return NewPass(ds, sel).TopActivities()
}

// FoundingHeatmap returns the founding-year × industry matrix.
func FoundingHeatmap(ds *Datasets, sel filter.Selection) Heatmap {
	return NewPass(ds, sel).Heatmap()
}

// IndustryTreemap returns counts for the seven fixed industries.
func IndustryTreemap(ds *Datasets, sel filter.Selection) []CategoryCount {
	return NewPass(ds, sel).Treemap()
}

// StageDistribution returns counts for the ten funding stages.
func StageDistribution(ds *Datasets, sel filter.Selection) []CategoryCount {
	return NewPass(ds, sel).StageDistribution()
}

// SingleStageCount counts startups at the selected stage.
func SingleStageCount(ds *Datasets, sel filter.Selection) (StageCount, error) {
	return NewPass(ds, sel).StageCount(sel)
}

// DealVolumeValue returns deal count and funding per period.
func DealVolumeValue(ds *Datasets, sel filter.Selection) (DealSeries, error) {
	return NewPass(ds, sel).Deals()
}

// StartupTable lists the selected startups.
func StartupTable(ds *Datasets, sel filter.Selection) *TableData {
	return NewPass(ds, sel).Table()
}
