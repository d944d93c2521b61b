package engine

import (
	"sort"
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

type visitKey struct {
	plate   string
	product string // "" when the product is unknown
}

// ComputeVisits reconstructs one visit row per (truck, product) pair for the
// queried window, derives durations and quality flags, joins the other three
// sources, and returns rows sorted by (product, date, plate).
func (e *Engine) ComputeVisits(snap model.Snapshot, q Query) []model.Visit {
	statusW := e.filterStatus(snap.Status, q.Window)
	logisticW := e.filterLogistic(snap.Logistic, q.Window)

	arrivals := make(map[visitKey]time.Time)
	starts := make(map[visitKey]time.Time)
	completions := make(map[visitKey][]time.Time)
	for _, ev := range statusW {
		if ev.Timestamp == nil {
			continue
		}
		k := visitKey{plate: ev.Plate, product: derefOrEmpty(ev.Product)}
		switch ev.Status {
		case model.StatusArrival:
			if prev, ok := arrivals[k]; !ok || ev.Timestamp.Before(prev) {
				arrivals[k] = *ev.Timestamp
			}
		case model.StatusStartLoading:
			if prev, ok := starts[k]; !ok || ev.Timestamp.Before(prev) {
				starts[k] = *ev.Timestamp
			}
		case model.StatusCompleted:
			completions[k] = append(completions[k], *ev.Timestamp)
		}
	}
	for k := range completions {
		ts := completions[k]
		sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
		completions[k] = ts
	}

	// Product identity per truck: today's status and logistics rows first,
	// then the full status history, so a truck whose events today lack a
	// product tag keeps the product it is known to carry.
	products := make(map[string]map[string]struct{})
	noteProduct := func(plate string, product *string) {
		if product == nil {
			return
		}
		set, ok := products[plate]
		if !ok {
			set = make(map[string]struct{})
			products[plate] = set
		}
		set[*product] = struct{}{}
	}
	for _, ev := range statusW {
		noteProduct(ev.Plate, ev.Product)
	}
	for _, r := range logisticW {
		noteProduct(r.Plate, r.Product)
	}
	for _, ev := range snap.Status {
		noteProduct(ev.Plate, ev.Product)
	}

	// Truck universe: every plate seen anywhere, not just in the status log,
	// so a truck with only a gate or driver record surfaces as a quality gap
	// instead of vanishing.
	trucks := make(map[string]struct{})
	for _, r := range snap.Status {
		trucks[r.Plate] = struct{}{}
	}
	for _, r := range snap.Logistic {
		trucks[r.Plate] = struct{}{}
	}
	for _, r := range snap.Security {
		trucks[r.Plate] = struct{}{}
	}
	for _, r := range snap.Driver {
		trucks[r.Plate] = struct{}{}
	}
	plates := make([]string, 0, len(trucks))
	for plate := range trucks {
		plates = append(plates, plate)
	}
	sort.Strings(plates)

	logisticForFallback := logisticW
	if len(logisticForFallback) == 0 {
		logisticForFallback = snap.Logistic
	}
	lastLogistic := make(map[string]time.Time)
	for _, r := range logisticForFallback {
		if r.Timestamp == nil {
			continue
		}
		if prev, ok := lastLogistic[r.Plate]; !ok || r.Timestamp.After(prev) {
			lastLogistic[r.Plate] = *r.Timestamp
		}
	}

	attrs := e.logisticByTriple(snap.Logistic)
	directions := e.indexDirections(snap.Security)
	contacts := indexContacts(snap.Driver, snap.Security)

	visits := make([]model.Visit, 0, len(plates))
	for _, plate := range plates {
		productSet := products[plate]
		names := make([]string, 0, len(productSet))
		for name := range productSet {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) == 0 {
			names = []string{""}
		}

		for _, name := range names {
			k := visitKey{plate: plate, product: name}
			var product *string
			if name != "" {
				p := name
				product = &p
			}

			visit := model.Visit{Plate: plate, Product: product}
			if t, ok := arrivals[k]; ok {
				visit.ArrivalTime = &t
			}
			if t, ok := starts[k]; ok {
				visit.StartLoadingTime = &t
			}
			visit.CompletedTime = chooseCompletion(
				completions[k], visit.StartLoadingTime, lastLogistic, plate, q.UseFallbackCompletion)

			visit.WaitingMin = minutesBetween(visit.ArrivalTime, visit.StartLoadingTime)
			visit.LoadingMin = minutesBetween(visit.StartLoadingTime, visit.CompletedTime)
			visit.TotalMin = totalMinutes(visit.WaitingMin, visit.LoadingMin)
			visit.IsValidOrder, visit.OrderError = orderResult(
				visit.ArrivalTime, visit.StartLoadingTime, visit.CompletedTime)
			visit.DataQuality = qualityFlag(
				visit.ArrivalTime, visit.StartLoadingTime, visit.CompletedTime)
			visit.Mission = missionLabel(visit.StartLoadingTime, visit.CompletedTime)
			visit.Date = e.deriveDate(visit)

			if visit.Date != nil {
				a := attrs[tripleKey{plate: plate, product: name, date: *visit.Date}]
				if a.hasWeight {
					w := a.weightMT
					visit.WeightMT = &w
				}
				visit.DeliveryNo = a.deliveryNo
				visit.TruckCondition = a.condition
			}
			visit.Direction = directions.lookup(plate, visit.Date)
			if contact, ok := contacts[plate]; ok {
				visit.DriverName = contact.driverName
				visit.Phone = contact.phone
			}
			visit.LoadingRateMinPerMT, visit.LoadingRateMTPerHr = loadingRates(visit.WeightMT, visit.LoadingMin)

			visits = append(visits, visit)
		}
	}

	visits = e.applyVisitFilters(visits, q)
	sortVisits(visits)
	return visits
}

// chooseCompletion picks the completed timestamp for a visit. Operators press
// the completion button more than once in practice, so with a known loading
// start the earliest completion at or after it wins; a stray premature
// completion only counts when nothing followed the start, in which case the
// last press is taken. Without a start the first completion stands. With no
// completion at all, fallback mode substitutes the truck's latest logistics
// document time as a proxy.
func chooseCompletion(sorted []time.Time, start *time.Time, lastLogistic map[string]time.Time, plate string, useFallback bool) *time.Time {
	if len(sorted) > 0 {
		if start == nil {
			t := sorted[0]
			return &t
		}
		for _, t := range sorted {
			if !t.Before(*start) {
				chosen := t
				return &chosen
			}
		}
		t := sorted[len(sorted)-1]
		return &t
	}
	if useFallback {
		if t, ok := lastLogistic[plate]; ok {
			return &t
		}
	}
	return nil
}

// deriveDate attributes a visit to the local date of its first known
// lifecycle timestamp, preferring arrival over start over completion.
func (e *Engine) deriveDate(v model.Visit) *model.Date {
	for _, ts := range []*time.Time{v.ArrivalTime, v.StartLoadingTime, v.CompletedTime} {
		if ts != nil {
			return e.dateOf(ts)
		}
	}
	return nil
}

func orderResult(arrival, start, completed *time.Time) (bool, *string) {
	ok, reason := ValidateOrder(arrival, start, completed)
	if ok {
		return true, nil
	}
	return false, &reason
}

func (e *Engine) applyVisitFilters(visits []model.Visit, q Query) []model.Visit {
	out := make([]model.Visit, 0, len(visits))
	for _, v := range visits {
		if !q.Window.IsZero() {
			if v.Date == nil || !q.Window.Contains(*v.Date) {
				continue
			}
		}
		if !q.matchesProduct(v.Product) {
			continue
		}
		if q.Direction != nil && (v.Direction == nil || *v.Direction != *q.Direction) {
			continue
		}
		if q.TruckCondition != nil && (v.TruckCondition == nil || *v.TruckCondition != *q.TruckCondition) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// sortVisits orders rows by (product, date, plate); missing products and
// dates sort last so complete rows lead the table.
func sortVisits(visits []model.Visit) {
	sort.SliceStable(visits, func(i, j int) bool {
		pi, pj := visits[i].Product, visits[j].Product
		switch {
		case pi == nil && pj != nil:
			return false
		case pi != nil && pj == nil:
			return true
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		}
		di, dj := visits[i].Date, visits[j].Date
		switch {
		case di == nil && dj != nil:
			return false
		case di != nil && dj == nil:
			return true
		case di != nil && dj != nil && *di != *dj:
			return di.Before(*dj)
		}
		return visits[i].Plate < visits[j].Plate
	})
}
