package engine

import (
	"slices"
	"strconv"
	"sync"

	"github.com/padangco/seagreen/dataset"
	"github.com/padangco/seagreen/filter"
)

// ============================================================================
// PASS: One base-filter scan shared by every derived view
// ============================================================================
// Pipeline:
//   1. Base filter: startups by exact country, funding by case-folded country
//   2. Each view aggregates the filtered SubViews on first use
//   3. Results are memoized on the Pass; accessors return copies
//
// A Pass depends only on the country set. It is safe for concurrent use, so
// one Pass can be shared by every session that selects the same countries.
// ============================================================================

// Pass holds the base-filtered views for one country set.
type Pass struct {
	ds        *Datasets
	cfg       *config
	countries []string

	startups RecordView
	funding  RecordView

	overview lazy[Overview]
	heatmap  lazy[Heatmap]
	treemap  lazy[[]CategoryCount]
	stages   lazy[[]CategoryCount]
	deals    lazy[DealSeries]
	table    lazy[*TableData]
}

// NewPass applies the base filter for sel's countries.
func NewPass(ds *Datasets, sel filter.Selection, opts ...Option) *Pass {
	countries := sel.Countries()
	return &Pass{
		ds:        ds,
		cfg:       applyOptions(opts),
		countries: countries,
		startups:  FilterCountries(ds.Startups, countries, MatchExact),
		funding:   FilterCountries(ds.Funding, countries, MatchFold),
	}
}

// Countries returns the country set this pass was filtered by.
func (p *Pass) Countries() []string { return slices.Clone(p.countries) }

// Startups returns the filtered startup rows.
func (p *Pass) Startups() RecordView { return p.startups }

// Funding returns the filtered funding rows.
func (p *Pass) Funding() RecordView { return p.funding }

// Count is the number of startups passing the base filter.
func (p *Pass) Count() int { return p.startups.Len() }

// Overview returns the count and the top industries and activities.
func (p *Pass) Overview() Overview {
	o, _ := p.overview.get(func() (Overview, error) {
		return Overview{
			Count:         p.startups.Len(),
			TopIndustries: TopModes(p.startups, DimIndustry, p.cfg.TopN),
			TopActivities: TopModes(p.startups, DimActivity1, p.cfg.TopN),
		}, nil
	})
	return Overview{
		Count:         o.Count,
		TopIndustries: slices.Clone(o.TopIndustries),
		TopActivities: slices.Clone(o.TopActivities),
	}
}

// TopIndustries returns the most common industries.
func (p *Pass) TopIndustries() []string { return p.Overview().TopIndustries }

// TopActivities returns the most common primary activities.
func (p *Pass) TopActivities() []string { return p.Overview().TopActivities }

// Heatmap cross-tabulates industries by founding year.
func (p *Pass) Heatmap() Heatmap {
	h, _ := p.heatmap.get(func() (Heatmap, error) {
		m := CrossTab(p.startups, DimIndustry, DimFoundedYear)
		years := make([]int, len(m.ColKeys))
		for i, k := range m.ColKeys {
			years[i], _ = strconv.Atoi(k)
		}
		return Heatmap{Industries: m.RowKeys, Years: years, Cells: m.Cells}, nil
	})
	return h.clone()
}

// Treemap counts startups for each of the fixed industries.
func (p *Pass) Treemap() []CategoryCount {
	t, _ := p.treemap.get(func() ([]CategoryCount, error) {
		return CountByCategory(p.startups, DimIndustry, dataset.Industries), nil
	})
	return slices.Clone(t)
}

// StageDistribution counts startups for each funding stage, in stage order.
func (p *Pass) StageDistribution() []CategoryCount {
	s, _ := p.stages.get(func() ([]CategoryCount, error) {
		return CountByCategory(p.startups, DimCompanyStage, dataset.Stages), nil
	})
	return slices.Clone(s)
}

// StageCount counts startups at sel's funding stage.
// Only the stage is read from sel; the countries are the pass's own.
func (p *Pass) StageCount(sel filter.Selection) (StageCount, error) {
	stage, ok := sel.Stage()
	if !ok {
		return StageCount{}, ErrNoStageSelected
	}
	return StageCount{Stage: stage, Count: CountEqual(p.startups, DimCompanyStage, stage)}, nil
}

// Deals groups the filtered funding rows by period.
func (p *Pass) Deals() (DealSeries, error) {
	d, err := p.deals.get(func() (DealSeries, error) {
		if p.funding.Len() == 0 {
			return DealSeries{}, ErrEmptySelection
		}
		totals := GroupPeriods(p.funding, p.ds.periodOrder)
		out := DealSeries{
			Periods:       make([]string, len(totals)),
			DealCounts:    make([]int, len(totals)),
			FundingTotals: make([]float64, len(totals)),
		}
		for i, t := range totals {
			out.Periods[i] = t.Period
			out.DealCounts[i] = t.Deals
			out.FundingTotals[i] = t.Amount
		}
		return out, nil
	})
	if err != nil {
		return DealSeries{}, err
	}
	return d.clone(), nil
}

// Table lists the filtered startups with the Query tab columns.
func (p *Pass) Table() *TableData {
	t, _ := p.table.get(func() (*TableData, error) {
		return BuildStartupTable(p.startups), nil
	})
	return t.clone()
}

// QueryTable narrows the filtered startups by per-column text and year range.
func (p *Pass) QueryTable(q TableQuery) (*TableData, error) {
	if q.IsEmpty() {
		return p.Table(), nil
	}
	view, err := ApplyTableQuery(p.startups, q)
	if err != nil {
		return nil, err
	}
	return BuildStartupTable(view), nil
}

// lazy memoizes one computation.
type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = fn() })
	return l.val, l.err
}
