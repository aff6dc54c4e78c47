package engine

import (
	"strconv"

	"github.com/padangco/seagreen/dataset"
)

// Dimension and measure keys. Dimension keys reuse the source column keys.
const (
	DimIndustry     = dataset.ColIndustry
	DimActivity1    = dataset.ColActivity1
	DimActivity2    = dataset.ColActivity2
	DimActivity3    = dataset.ColActivity3
	DimCountry      = dataset.ColCountry
	DimCompany      = dataset.ColCompany
	DimWebsite      = dataset.ColWebsite
	DimFoundedYear  = dataset.ColFoundedYear
	DimCompanyStage = dataset.ColCompanyStage
	DimPeriod       = dataset.ColPeriod

	MeasureFoundedYear = dataset.ColFoundedYear
	MeasureFunding     = dataset.ColFundingAmount
	MeasureDeals       = "deal_count" // synthetic: 1 per funding row
)

var startupAdapter = NewDomainAdapter[dataset.StartupRecord]().
	Dimension(DimIndustry, func(r dataset.StartupRecord) string { return r.Industry }).
	Dimension(DimActivity1, func(r dataset.StartupRecord) string { return r.Activity1 }).
	Dimension(DimActivity2, func(r dataset.StartupRecord) string { return r.Activity2 }).
	Dimension(DimActivity3, func(r dataset.StartupRecord) string { return r.Activity3 }).
	Dimension(DimCountry, func(r dataset.StartupRecord) string { return r.Country }).
	Dimension(DimCompany, func(r dataset.StartupRecord) string { return r.Company }).
	Dimension(DimWebsite, func(r dataset.StartupRecord) string { return r.Website }).
	Dimension(DimFoundedYear, func(r dataset.StartupRecord) string { return formatYear(r.FoundedYear) }).
	Dimension(DimCompanyStage, func(r dataset.StartupRecord) string { return r.CompanyStage }).
	Measure(MeasureFoundedYear, func(r dataset.StartupRecord) float64 { return float64(r.FoundedYear) })

var fundingAdapter = NewDomainAdapter[dataset.FundingPeriodRecord]().
	Dimension(DimCountry, func(r dataset.FundingPeriodRecord) string { return r.Country }).
	Dimension(DimPeriod, func(r dataset.FundingPeriodRecord) string { return r.Period }).
	Measure(MeasureFunding, func(r dataset.FundingPeriodRecord) float64 { return r.FundingAmountMillionUSD }).
	Measure(MeasureDeals, func(dataset.FundingPeriodRecord) float64 { return 1 })

// Datasets is the engine's read-only handle on a loaded Store.
// One Datasets value can back any number of sessions.
type Datasets struct {
	Startups RecordView
	Funding  RecordView

	// periods in first-appearance order over the full funding table
	periodOrder []string
}

// Bind wraps a Store's tables as record views.
func Bind(store *dataset.Store) *Datasets {
	funding := fundingAdapter.Bind(store.Funding())
	return &Datasets{
		Startups:    startupAdapter.Bind(store.Startups()),
		Funding:     funding,
		periodOrder: UniqueValues(funding, DimPeriod),
	}
}

// Periods returns every funding period in natural dataset order.
func (d *Datasets) Periods() []string {
	out := make([]string, len(d.periodOrder))
	copy(out, d.periodOrder)
	return out
}

func formatYear(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
