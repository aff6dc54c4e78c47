package filter

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultSelection(t *testing.T) {
	f := New()
	sel := f.Current()
	if sel.HasCountries() {
		t.Errorf("default selection has countries: %v", sel.Countries())
	}
	if _, ok := sel.Stage(); ok {
		t.Error("default selection has a stage")
	}
}

func TestSetCountriesCanonicalises(t *testing.T) {
	f := New()
	if err := f.SetCountries([]string{"Vietnam", "Indonesia", "Vietnam"}); err != nil {
		t.Fatalf("SetCountries failed: %v", err)
	}
	got := f.Current().Countries()
	want := []string{"Indonesia", "Vietnam"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Countries = %v, want %v", got, want)
	}

	a, _ := NewSelection([]string{"Thailand", "Malaysia"}, "")
	b, _ := NewSelection([]string{"Malaysia", "Thailand"}, "")
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Errorf("order should not matter: %q vs %q", a.Key(), b.Key())
	}
}

func TestInvalidValuesLeaveStateUnchanged(t *testing.T) {
	f := New()
	if err := f.SetCountries([]string{"Singapore"}); err != nil {
		t.Fatalf("SetCountries failed: %v", err)
	}
	if err := f.SetStage("Seed"); err != nil {
		t.Fatalf("SetStage failed: %v", err)
	}
	before := f.Current()

	tests := []struct {
		name  string
		apply func() error
		field string
		value string
	}{
		{"unknown country", func() error { return f.SetCountries([]string{"Singapore", "Laos"}) }, FieldCountries, "Laos"},
		{"wrong case country", func() error { return f.SetCountries([]string{"singapore"}) }, FieldCountries, "singapore"},
		{"unknown stage", func() error { return f.SetStage("Series E") }, FieldStage, "Series E"},
		{"empty stage", func() error { return f.SetStage("") }, FieldStage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.apply()
			var invalid *InvalidFilterValue
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidFilterValue, got %v", err)
			}
			if invalid.Field != tt.field || invalid.Value != tt.value {
				t.Errorf("got %s=%q, want %s=%q", invalid.Field, invalid.Value, tt.field, tt.value)
			}
			if !f.Current().Equal(before) {
				t.Errorf("state changed to %v", f.Current())
			}
		})
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	f := New()
	var seen []Selection
	unsubscribe := f.Subscribe(func(s Selection) { seen = append(seen, s) })

	_ = f.SetCountries([]string{"Vietnam"})
	_ = f.SetCountries([]string{"Vietnam"}) // no change, no event
	_ = f.SetStage("Seed")
	_ = f.SetCountries([]string{"Atlantis"}) // rejected, no event
	f.ClearStage()

	if len(seen) != 3 {
		t.Fatalf("notifications = %d, want 3", len(seen))
	}
	if stage, ok := seen[1].Stage(); !ok || stage != "Seed" {
		t.Errorf("second event stage = %q/%v", stage, ok)
	}
	if _, ok := seen[2].Stage(); ok {
		t.Error("third event should have cleared stage")
	}

	unsubscribe()
	_ = f.SetCountries(nil)
	if len(seen) != 3 {
		t.Errorf("notified after unsubscribe")
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	f := New()
	var order []int
	f.Subscribe(func(Selection) { order = append(order, 1) })
	f.Subscribe(func(Selection) { order = append(order, 2) })
	f.Subscribe(func(Selection) { order = append(order, 3) })

	_ = f.SetStage("Acquired")
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestSelectionJSON(t *testing.T) {
	sel, err := NewSelection([]string{"Vietnam"}, "")
	if err != nil {
		t.Fatalf("NewSelection failed: %v", err)
	}
	b, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"countries":["Vietnam"],"stage":null}` {
		t.Errorf("json = %s", b)
	}

	b, _ = json.Marshal(Selection{})
	if string(b) != `{"countries":[],"stage":null}` {
		t.Errorf("zero json = %s", b)
	}
}
