// Package filter holds the user's dashboard selections.
//
// A Filter is owned by one session. Every mutation is validated against the
// closed reference sets in package dataset; rejected input leaves the
// current Selection untouched.
package filter

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/padangco/seagreen/dataset"
)

// Selection is an immutable snapshot of the filter state.
// The zero value selects no countries and no stage.
type Selection struct {
	countries []string // canonical: unique, in dataset.Countries order
	stage     string
	hasStage  bool
}

// NewSelection validates and canonicalises a selection.
// An empty stage means "unset".
func NewSelection(countries []string, stage string) (Selection, error) {
	canon, err := canonicalCountries(countries)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{countries: canon}
	if stage != "" {
		if !dataset.IsStage(stage) {
			return Selection{}, &InvalidFilterValue{Field: FieldStage, Value: stage}
		}
		sel.stage, sel.hasStage = stage, true
	}
	return sel, nil
}

// Countries returns the selected countries in reference order.
func (s Selection) Countries() []string { return slices.Clone(s.countries) }

// HasCountries reports whether at least one country is selected.
func (s Selection) HasCountries() bool { return len(s.countries) > 0 }

// Stage returns the selected stage and whether one is set.
func (s Selection) Stage() (string, bool) { return s.stage, s.hasStage }

// CountriesKey identifies the country set. Equal sets give equal keys.
func (s Selection) CountriesKey() string { return strings.Join(s.countries, "|") }

// Key identifies the whole selection.
func (s Selection) Key() string {
	if !s.hasStage {
		return s.CountriesKey() + "#"
	}
	return s.CountriesKey() + "#" + s.stage
}

// Equal reports whether two selections are the same value.
func (s Selection) Equal(o Selection) bool { return s.Key() == o.Key() }

func (s Selection) withCountries(c []string) Selection {
	s.countries = c
	return s
}

func (s Selection) withStage(stage string, set bool) Selection {
	s.stage, s.hasStage = stage, set
	return s
}

type selectionJSON struct {
	Countries []string `json:"countries"`
	Stage     *string  `json:"stage"`
}

// MarshalJSON encodes the selection; an unset stage is null.
func (s Selection) MarshalJSON() ([]byte, error) {
	out := selectionJSON{Countries: s.Countries()}
	if out.Countries == nil {
		out.Countries = []string{}
	}
	if s.hasStage {
		stage := s.stage
		out.Stage = &stage
	}
	return json.Marshal(out)
}

func (s Selection) String() string {
	stage := "<unset>"
	if s.hasStage {
		stage = s.stage
	}
	return fmt.Sprintf("countries=[%s] stage=%s", strings.Join(s.countries, ", "), stage)
}

// canonicalCountries validates, de-duplicates and orders a country list.
func canonicalCountries(countries []string) ([]string, error) {
	seen := make(map[string]bool, len(countries))
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		if !dataset.IsCountry(c) {
			return nil, &InvalidFilterValue{Field: FieldCountries, Value: c}
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return dataset.CountryOrder(out[i]) < dataset.CountryOrder(out[j])
	})
	return out, nil
}
