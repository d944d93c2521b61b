package engine

import (
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

// inWindow reports whether a row timestamp falls on a local calendar date
// inside the window. Rows without a parseable timestamp never match a dated
// window but always survive a zero window.
func (e *Engine) inWindow(ts *time.Time, w Window) bool {
	if w.IsZero() {
		return true
	}
	d := e.dateOf(ts)
	if d == nil {
		return false
	}
	return w.Contains(*d)
}

func (e *Engine) filterStatus(rows []model.StatusEvent, w Window) []model.StatusEvent {
	if w.IsZero() {
		return rows
	}
	out := make([]model.StatusEvent, 0, len(rows))
	for _, r := range rows {
		if e.inWindow(r.Timestamp, w) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) filterSecurity(rows []model.SecurityScan, w Window) []model.SecurityScan {
	if w.IsZero() {
		return rows
	}
	out := make([]model.SecurityScan, 0, len(rows))
	for _, r := range rows {
		if e.inWindow(r.Timestamp, w) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) filterDriver(rows []model.DriverCheckin, w Window) []model.DriverCheckin {
	if w.IsZero() {
		return rows
	}
	out := make([]model.DriverCheckin, 0, len(rows))
	for _, r := range rows {
		if e.inWindow(r.Timestamp, w) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) filterLogistic(rows []model.LogisticEntry, w Window) []model.LogisticEntry {
	if w.IsZero() {
		return rows
	}
	out := make([]model.LogisticEntry, 0, len(rows))
	for _, r := range rows {
		if e.inWindow(r.Timestamp, w) {
			out = append(out, r)
		}
	}
	return out
}
