package filter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/padangco/seagreen/dataset"
)

// Filter field names reported by InvalidFilterValue.
const (
	FieldCountries = "countries"
	FieldStage     = "stage"
)

// InvalidFilterValue is returned when a selection falls outside its
// reference set. The filter state is left unchanged.
type InvalidFilterValue struct {
	Field string
	Value string
}

func (e *InvalidFilterValue) Error() string {
	return fmt.Sprintf("invalid %s filter value %q", e.Field, e.Value)
}

// Filter is the mutable selection holder for one session.
type Filter struct {
	mu      sync.Mutex
	current Selection
	nextID  int
	subs    map[int]func(Selection)
}

// New returns a Filter with no countries and no stage selected.
func New() *Filter {
	return &Filter{subs: make(map[int]func(Selection))}
}

// Current returns the last validated selection.
func (f *Filter) Current() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// SetCountries replaces the selected country set.
func (f *Filter) SetCountries(countries []string) error {
	canon, err := canonicalCountries(countries)
	if err != nil {
		return err
	}
	f.update(func(s Selection) Selection { return s.withCountries(canon) })
	return nil
}

// SetStage selects a funding stage.
func (f *Filter) SetStage(stage string) error {
	if !dataset.IsStage(stage) {
		return &InvalidFilterValue{Field: FieldStage, Value: stage}
	}
	f.update(func(s Selection) Selection { return s.withStage(stage, true) })
	return nil
}

// ClearStage unsets the funding stage.
func (f *Filter) ClearStage() {
	f.update(func(s Selection) Selection { return s.withStage("", false) })
}

// Subscribe registers fn to run after every mutation that changes the
// selection. Subscribers run synchronously, in registration order, before
// the mutating call returns.
func (f *Filter) Subscribe(fn func(Selection)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *Filter) update(change func(Selection) Selection) {
	f.mu.Lock()
	next := change(f.current)
	if next.Equal(f.current) {
		f.mu.Unlock()
		return
	}
	f.current = next
	subs := f.subscribers()
	f.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// subscribers returns the callbacks in registration order. Caller holds mu.
func (f *Filter) subscribers() []func(Selection) {
	ids := make([]int, 0, len(f.subs))
	for id := range f.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Selection), len(ids))
	for i, id := range ids {
		out[i] = f.subs[id]
	}
	return out
}
