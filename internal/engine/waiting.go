package engine

import (
	"sort"

	"github.com/isisteel/yard-turnaround/internal/model"
)

// latestStatusOn reduces the day's status log to the newest event per
// (plate, product). "Latest wins": a truck that arrived, loaded and arrived
// again is waiting, no matter how many earlier events exist.
func (e *Engine) latestStatusOn(snap model.Snapshot, date model.Date) map[visitKey]model.StatusEvent {
	latest := make(map[visitKey]model.StatusEvent)
	for _, ev := range snap.Status {
		if ev.Timestamp == nil || model.DateOf(*ev.Timestamp, e.loc) != date {
			continue
		}
		k := visitKey{plate: ev.Plate, product: derefOrEmpty(ev.Product)}
		if prev, ok := latest[k]; ok && !ev.Timestamp.After(*prev.Timestamp) {
			continue
		}
		latest[k] = ev
	}
	return latest
}

// CurrentWaiting lists the trucks still queuing on the given date: their
// newest status event is Arrival with nothing newer for that (plate,
// product). Waiting-so-far is measured against the engine clock.
func (e *Engine) CurrentWaiting(snap model.Snapshot, date model.Date, q Query) []model.WaitingTruck {
	now := e.now().In(e.loc)
	attrs := e.logisticByTriple(snap.Logistic)
	directions := e.indexDirections(snap.Security)
	contacts := indexContacts(snap.Driver, snap.Security)

	out := make([]model.WaitingTruck, 0)
	for k, ev := range e.latestStatusOn(snap, date) {
		if ev.Status != model.StatusArrival {
			continue
		}
		var product *string
		if k.product != "" {
			p := k.product
			product = &p
		}
		if !q.matchesProduct(product) {
			continue
		}

		d := date
		row := model.WaitingTruck{
			Plate:       k.plate,
			Product:     product,
			Date:        &d,
			ArrivalTime: ev.Timestamp,
			WaitingMin:  now.Sub(*ev.Timestamp).Minutes(),
		}
		row.Direction = directions.lookup(k.plate, &d)
		if q.Direction != nil && (row.Direction == nil || *row.Direction != *q.Direction) {
			continue
		}
		a := attrs[tripleKey{plate: k.plate, product: k.product, date: d}]
		if a.hasWeight {
			w := a.weightMT
			row.WeightMT = &w
		}
		row.DeliveryNo = a.deliveryNo
		if contact, ok := contacts[k.plate]; ok {
			row.DriverName = contact.driverName
			row.Phone = contact.phone
		}
		out = append(out, row)
	}

	// Longest wait first.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WaitingMin != out[j].WaitingMin {
			return out[i].WaitingMin > out[j].WaitingMin
		}
		return out[i].Plate < out[j].Plate
	})
	return out
}

// StatusSummary counts trucks by their newest lifecycle stage on the date.
func (e *Engine) StatusSummary(snap model.Snapshot, date model.Date, q Query) model.StatusCounts {
	directions := e.indexDirections(snap.Security)

	var counts model.StatusCounts
	for k, ev := range e.latestStatusOn(snap, date) {
		var product *string
		if k.product != "" {
			p := k.product
			product = &p
		}
		if !q.matchesProduct(product) {
			continue
		}
		if q.Direction != nil {
			dir := directions.lookup(k.plate, &date)
			if dir == nil || *dir != *q.Direction {
				continue
			}
		}
		switch ev.Status {
		case model.StatusArrival:
			counts.Waiting++
		case model.StatusStartLoading:
			counts.StartLoading++
		case model.StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}
