package dashboard

import (
	"fmt"
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/filter"
)

// ============================================================================
// DISPATCHER: Recompute policy
// ============================================================================
// Every Selection change runs all registered views once:
//   1. Resolve the base-filter Pass for the country set (memo hit or build)
//   2. Compute each view against the Pass and the full Selection
//   3. Route each Output to the view's sinks, then return the Snapshot
//
// Passes depend only on the country set, so a stage-only change reuses the
// memoized Pass and only the single-stage count does new work.
// ============================================================================

// DefaultCacheSize bounds the number of memoized passes.
const DefaultCacheSize = 64

// Dispatcher recomputes views for selections.
type Dispatcher struct {
	ds      *engine.Datasets
	engOpts []engine.Option
	memo    *lru.Cache[string, *engine.Pass]
	metrics *Metrics

	mu    sync.RWMutex
	views []View
	sinks map[string][]Sink
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherConfig)

type dispatcherConfig struct {
	cacheSize int
	engOpts   []engine.Option
	metrics   *Metrics
	views     []View
}

// WithCacheSize sets how many passes are memoized.
func WithCacheSize(n int) DispatcherOption {
	return func(c *dispatcherConfig) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// WithEngineOptions passes options to every Pass the dispatcher builds.
func WithEngineOptions(opts ...engine.Option) DispatcherOption {
	return func(c *dispatcherConfig) { c.engOpts = append(c.engOpts, opts...) }
}

// WithMetrics records dispatcher activity on m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(c *dispatcherConfig) { c.metrics = m }
}

// WithViews replaces the standard view set.
func WithViews(views ...View) DispatcherOption {
	return func(c *dispatcherConfig) { c.views = views }
}

// NewDispatcher creates a dispatcher over ds with the standard views.
func NewDispatcher(ds *engine.Datasets, opts ...DispatcherOption) (*Dispatcher, error) {
	cfg := &dispatcherConfig{cacheSize: DefaultCacheSize, views: StandardViews()}
	for _, opt := range opts {
		opt(cfg)
	}

	memo, err := lru.New[string, *engine.Pass](cfg.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create pass memo: %w", err)
	}

	d := &Dispatcher{
		ds:      ds,
		engOpts: cfg.engOpts,
		memo:    memo,
		metrics: cfg.metrics,
		sinks:   make(map[string][]Sink),
	}
	for _, v := range cfg.views {
		if err := d.Register(v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Datasets returns the tables the dispatcher computes over.
func (d *Dispatcher) Datasets() *engine.Datasets { return d.ds }

// Register adds a view. Names must be unique.
func (d *Dispatcher) Register(v View) error {
	if v.Name == "" || v.Compute == nil {
		return fmt.Errorf("register view: name and compute are required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.views {
		if existing.Name == v.Name {
			return fmt.Errorf("register view %q: already registered", v.Name)
		}
	}
	d.views = append(d.views, v)
	return nil
}

// Attach routes every output of the named view to sink.
func (d *Dispatcher) Attach(view string, sink Sink) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.lookup(view); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	d.sinks[view] = append(d.sinks[view], sink)
	return nil
}

// ViewNames lists the registered views in order.
func (d *Dispatcher) ViewNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.views))
	for i, v := range d.views {
		names[i] = v.Name
	}
	return names
}

// Pass returns the base-filter pass for sel's country set.
func (d *Dispatcher) Pass(sel filter.Selection) *engine.Pass {
	key := sel.CountriesKey()
	if p, ok := d.memo.Get(key); ok {
		if d.metrics != nil {
			d.metrics.MemoHits.Inc()
		}
		return p
	}
	if d.metrics != nil {
		d.metrics.MemoMisses.Inc()
	}
	p := engine.NewPass(d.ds, sel, d.engOpts...)
	// Another session may have built the same pass meanwhile.
	if prev, ok, _ := d.memo.PeekOrAdd(key, p); ok {
		return prev
	}
	return p
}

// Recompute runs every view for sel and delivers the outputs to sinks.
func (d *Dispatcher) Recompute(sel filter.Selection) Snapshot {
	start := time.Now()
	p := d.Pass(sel)

	d.mu.RLock()
	views := append([]View(nil), d.views...)
	sinks := make(map[string][]Sink, len(d.sinks))
	for k, v := range d.sinks {
		sinks[k] = append([]Sink(nil), v...)
	}
	d.mu.RUnlock()

	snap := Snapshot{Selection: sel, Outputs: make([]Output, 0, len(views))}
	for _, v := range views {
		out := d.run(v, p, sel)
		snap.Outputs = append(snap.Outputs, out)
		for _, sink := range sinks[v.Name] {
			sink(out)
		}
	}

	if d.metrics != nil {
		d.metrics.Recomputes.Inc()
		d.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	}
	return snap
}

// Compute runs a single view for sel without notifying sinks.
func (d *Dispatcher) Compute(sel filter.Selection, view string) (Output, error) {
	d.mu.RLock()
	v, ok := d.lookup(view)
	d.mu.RUnlock()
	if !ok {
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return d.run(v, d.Pass(sel), sel), nil
}

func (d *Dispatcher) run(v View, p *engine.Pass, sel filter.Selection) Output {
	val, err := v.Compute(p, sel)
	out := Output{View: v.Name, Selection: sel, Value: val, Err: err}
	switch out.Status() {
	case StatusSelectionRequired:
		if d.metrics != nil {
			d.metrics.SelectionRequired.WithLabelValues(v.Name).Inc()
		}
	case StatusError:
		log.Printf("⚠️  view %s failed for %s: %v", v.Name, sel, err)
	}
	return out
}

// lookup must be called with d.mu held.
func (d *Dispatcher) lookup(name string) (View, bool) {
	for _, v := range d.views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}
