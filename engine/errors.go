package engine

import "errors"

// Recoverable, view-local errors. The affected view asks the user for a
// selection; other views are unaffected.
var (
	// ErrNoStageSelected: the single-stage count needs a stage.
	ErrNoStageSelected = errors.New("no funding stage selected")

	// ErrEmptySelection: the deal series has no rows for the selected
	// countries. A blank chart would be indistinguishable from zero deals.
	ErrEmptySelection = errors.New("please select the country/countries")
)

// IsSelectionRequired reports whether err means "ask the user to select".
func IsSelectionRequired(err error) bool {
	return errors.Is(err, ErrNoStageSelected) || errors.Is(err, ErrEmptySelection)
}
