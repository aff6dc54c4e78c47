package engine

import (
	"errors"

	"golang.org/x/text/message"

	"github.com/padangco/seagreen/filter"
)

// ============================================================================
// TEXT BUILDER: Value-box text for the Overview and Investments tabs
// ============================================================================

// SelectionRequiredText is shown in place of a value that needs a selection.
const SelectionRequiredText = "Selection required"

// ValueBoxes holds the formatted text of every value box.
type ValueBoxes struct {
	TotalStartups string   `json:"totalStartups" yaml:"totalStartups"`
	TopIndustries []string `json:"topIndustries" yaml:"topIndustries"`
	TopActivities []string `json:"topActivities" yaml:"topActivities"`
	StageLine     string   `json:"stageLine" yaml:"stageLine"`
	StageRequired bool     `json:"stageRequired,omitempty" yaml:"stageRequired,omitempty"`
}

// BuildValueBoxes formats the pass's overview and sel's stage count.
func BuildValueBoxes(p *Pass, sel filter.Selection) ValueBoxes {
	printer := message.NewPrinter(p.cfg.Language)
	o := p.Overview()

	boxes := ValueBoxes{
		TotalStartups: printer.Sprintf("%d", o.Count),
		TopIndustries: o.TopIndustries,
		TopActivities: o.TopActivities,
	}

	sc, err := p.StageCount(sel)
	if errors.Is(err, ErrNoStageSelected) {
		boxes.StageLine = SelectionRequiredText
		boxes.StageRequired = true
		return boxes
	}
	boxes.StageLine = printer.Sprintf("%s: %d", sc.Stage, sc.Count)
	return boxes
}
