package dashboard

import (
	"encoding/json"
	"errors"

	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

// ============================================================================
// VIEWS: Named derived views and their outputs
// ============================================================================

// View names.
const (
	ViewCount         = "count"
	ViewTopIndustries = "topIndustries"
	ViewTopActivities = "topActivities"
	ViewHeatmap       = "heatmap"
	ViewTreemap       = "treemap"
	ViewStages        = "stages"
	ViewStageCount    = "stageCount"
	ViewDeals         = "deals"
	ViewTable         = "table"
	ViewValueBoxes    = "valueBoxes"
)

// Output statuses.
const (
	StatusOK                = "ok"
	StatusSelectionRequired = "selection_required"
	StatusError             = "error"
)

// ErrUnknownView is returned for a view name nothing is registered under.
var ErrUnknownView = errors.New("unknown view")

// View derives one value from a pass and the selection that produced it.
type View struct {
	Name    string
	Compute func(p *engine.Pass, sel filter.Selection) (any, error)
}

// Sink receives a view's output after every recompute.
type Sink func(Output)

// Output is one view's result for one selection.
type Output struct {
	View      string
	Selection filter.Selection
	Value     any
	Err       error
}

// Status classifies the output for presentation.
func (o Output) Status() string {
	switch {
	case o.Err == nil:
		return StatusOK
	case engine.IsSelectionRequired(o.Err):
		return StatusSelectionRequired
	default:
		return StatusError
	}
}

type outputJSON struct {
	View    string `json:"view"`
	Status  string `json:"status"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON writes {"view","status","value"} or {"view","status","message"}.
func (o Output) MarshalJSON() ([]byte, error) {
	out := outputJSON{View: o.View, Status: o.Status()}
	if o.Err != nil {
		out.Message = o.Err.Error()
	} else {
		out.Value = o.Value
	}
	return json.Marshal(out)
}

// Snapshot is every view's output for one selection, in registration order.
type Snapshot struct {
	Selection filter.Selection `json:"selection"`
	Outputs   []Output         `json:"views"`
}

// Get returns the named view's output.
func (s Snapshot) Get(view string) (Output, bool) {
	for _, o := range s.Outputs {
		if o.View == view {
			return o, true
		}
	}
	return Output{}, false
}

// StandardViews returns the dashboard's views.
func StandardViews() []View {
	return []View{
		{Name: ViewCount, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.Count(), nil
		}},
		{Name: ViewTopIndustries, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.TopIndustries(), nil
		}},
		{Name: ViewTopActivities, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.TopActivities(), nil
		}},
		{Name: ViewHeatmap, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.Heatmap(), nil
		}},
		{Name: ViewTreemap, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.Treemap(), nil
		}},
		{Name: ViewStages, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.StageDistribution(), nil
		}},
		{Name: ViewStageCount, Compute: func(p *engine.Pass, sel filter.Selection) (any, error) {
			return p.StageCount(sel)
		}},
		{Name: ViewDeals, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.Deals()
		}},
		{Name: ViewTable, Compute: func(p *engine.Pass, _ filter.Selection) (any, error) {
			return p.Table(), nil
		}},
		{Name: ViewValueBoxes, Compute: func(p *engine.Pass, sel filter.Selection) (any, error) {
			return engine.BuildValueBoxes(p, sel), nil
		}},
	}
}
