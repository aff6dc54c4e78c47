package engine

import (
	"golang.org/x/text/cases"
)

// ============================================================================
// FILTERS: Country base filter via RecordView
// ============================================================================
// Single pass over the parent view. Returns a SubView (index list into the
// parent): zero data copy.
//
// The startup table carries canonical country names and is matched exactly.
// The funding table's labels vary in case and are matched case-folded.
// An empty country list selects nothing.
// ============================================================================

// CountryMatch selects how country labels are compared.
type CountryMatch int

const (
	MatchExact CountryMatch = iota
	MatchFold
)

// FilterCountries returns the rows of view whose country dimension is in countries.
func FilterCountries(view RecordView, countries []string, match CountryMatch) RecordView {
	if len(countries) == 0 {
		return newSubView(view, nil)
	}

	normalize := func(s string) string { return s }
	if match == MatchFold {
		folder := cases.Fold()
		normalize = folder.String
	}

	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[normalize(c)] = true
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if set[normalize(view.Dimension(i, DimCountry))] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}
