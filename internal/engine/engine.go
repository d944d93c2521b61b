// Package engine reconstructs per-(truck, product, date) visits from the four
// yard source logs and derives duration and throughput KPIs. Everything here
// is a pure function of one immutable snapshot plus a query: no I/O, no
// stored state, and wall-clock time only through the injected clock.
package engine

import (
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

type Engine struct {
	loc *time.Location
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces the wall clock, used by current-waiting computations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(loc *time.Location, opts ...Option) *Engine {
	e := &Engine{
		loc: loc,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Window is an inclusive calendar-date range. A zero window matches
// everything; Single takes precedence over Start/End.
type Window struct {
	Single *model.Date
	Start  *model.Date
	End    *model.Date
}

func SingleDay(d model.Date) Window {
	return Window{Single: &d}
}

func DateRange(start, end model.Date) Window {
	return Window{Start: &start, End: &end}
}

func (w Window) IsZero() bool {
	return w.Single == nil && w.Start == nil && w.End == nil
}

func (w Window) Contains(d model.Date) bool {
	if w.Single != nil {
		return d == *w.Single
	}
	if w.Start != nil && d.Before(*w.Start) {
		return false
	}
	if w.End != nil && d.After(*w.End) {
		return false
	}
	return true
}

// Query selects and scopes one computation pass.
type Query struct {
	Window         Window
	Products       []string
	Direction      *model.Direction
	TruckCondition *string
	// UseFallbackCompletion substitutes the truck's latest logistics
	// timestamp for a missing Completed event.
	UseFallbackCompletion bool
}

func (q Query) matchesProduct(product *string) bool {
	if len(q.Products) == 0 {
		return true
	}
	if product == nil {
		return false
	}
	for _, p := range q.Products {
		if p == *product {
			return true
		}
	}
	return false
}

func (e *Engine) dateOf(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	d := model.DateOf(*t, e.loc)
	return &d
}

// LatestDate returns the newest calendar date observed across all four
// tables, used as the default reporting date when a query names none.
func (e *Engine) LatestDate(snap model.Snapshot) *model.Date {
	var latest *model.Date
	consider := func(ts *time.Time) {
		d := e.dateOf(ts)
		if d == nil {
			return
		}
		if latest == nil || d.After(*latest) {
			latest = d
		}
	}
	for _, r := range snap.Security {
		consider(r.Timestamp)
	}
	for _, r := range snap.Driver {
		consider(r.Timestamp)
	}
	for _, r := range snap.Status {
		consider(r.Timestamp)
	}
	for _, r := range snap.Logistic {
		consider(r.Timestamp)
	}
	return latest
}
