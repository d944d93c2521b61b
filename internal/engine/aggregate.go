package engine

import (
	"sort"
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

// loadingRates derives min/MT and MT/hour from a weight and a loading
// duration. Both come back nil when either input is absent or zero: a zero
// weight or zero duration means the rates are undefined, not zero, and
// division-by-zero artifacts must never reach output.
func loadingRates(weightMT, loadingMin *float64) (minPerMT, mtPerHour *float64) {
	if weightMT == nil || loadingMin == nil {
		return nil, nil
	}
	if *weightMT == 0 || *loadingMin == 0 {
		return nil, nil
	}
	a := *loadingMin / *weightMT
	b := *weightMT * 60.0 / *loadingMin
	return &a, &b
}

type productDirKey struct {
	product   string
	direction string
}

// ProductSummaries groups visit rows by (product, direction) and derives
// throughput rates per group.
func ProductSummaries(visits []model.Visit) []model.ProductSummary {
	type bucket struct {
		product    *string
		direction  *model.Direction
		plates     map[string]struct{}
		weightMT   float64
		hasWeight  bool
		loadingMin float64
		hasLoading bool
	}

	buckets := make(map[productDirKey]*bucket)
	order := make([]productDirKey, 0)
	for i := range visits {
		v := &visits[i]
		k := productDirKey{product: derefOrEmpty(v.Product)}
		if v.Direction != nil {
			k.direction = string(*v.Direction)
		}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{product: v.Product, direction: v.Direction, plates: make(map[string]struct{})}
			buckets[k] = b
			order = append(order, k)
		}
		b.plates[v.Plate] = struct{}{}
		if v.WeightMT != nil {
			b.weightMT += *v.WeightMT
			b.hasWeight = true
		}
		if v.LoadingMin != nil {
			b.loadingMin += *v.LoadingMin
			b.hasLoading = true
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].product != order[j].product {
			return order[i].product < order[j].product
		}
		return order[i].direction < order[j].direction
	})

	out := make([]model.ProductSummary, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		summary := model.ProductSummary{
			Product:         b.product,
			Direction:       b.direction,
			TruckCount:      len(b.plates),
			TotalWeightMT:   b.weightMT,
			TotalLoadingMin: b.loadingMin,
		}
		var weight, loading *float64
		if b.hasWeight {
			weight = &b.weightMT
		}
		if b.hasLoading {
			loading = &b.loadingMin
		}
		summary.LoadingRateMinPerMT, summary.LoadingRateMTPerHr = loadingRates(weight, loading)
		out = append(out, summary)
	}
	return out
}

// TruckTurnarounds folds the queried window down to one row per truck: total
// tonnage, the yard-time budget (waiting, loading, documentation) and how
// much of the gate-to-gate turnaround that budget leaves unexplained.
func (e *Engine) TruckTurnarounds(snap model.Snapshot, q Query) []model.TruckTurnaround {
	visits := e.ComputeVisits(snap, q)

	type bucket struct {
		date       *model.Date
		waitingMin float64
		hasWaiting bool
		loadingMin float64
		hasLoading bool
		productSet map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	for i := range visits {
		v := &visits[i]
		b, ok := buckets[v.Plate]
		if !ok {
			b = &bucket{date: v.Date, productSet: make(map[string]struct{})}
			buckets[v.Plate] = b
		}
		if v.WaitingMin != nil {
			b.waitingMin += *v.WaitingMin
			b.hasWaiting = true
		}
		if v.LoadingMin != nil {
			b.loadingMin += *v.LoadingMin
			b.hasLoading = true
		}
		if v.Product != nil {
			b.productSet[*v.Product] = struct{}{}
		}
	}

	logisticW := e.filterLogistic(snap.Logistic, q.Window)
	weightPerTruck := make(map[string]float64)
	hasWeight := make(map[string]bool)
	lastDoc := make(map[string]time.Time)
	for _, r := range logisticW {
		if !q.matchesProduct(r.Product) {
			continue
		}
		if q.TruckCondition != nil && (r.Condition == nil || *r.Condition != *q.TruckCondition) {
			continue
		}
		if r.WeightMT != nil {
			weightPerTruck[r.Plate] += *r.WeightMT
			hasWeight[r.Plate] = true
		}
		if r.Timestamp != nil {
			if prev, ok := lastDoc[r.Plate]; !ok || r.Timestamp.After(prev) {
				lastDoc[r.Plate] = *r.Timestamp
			}
		}
	}

	driverW := e.filterDriver(snap.Driver, q.Window)
	driverIn := make(map[string]time.Time)
	phones := make(map[string]*string)
	for _, r := range driverW {
		if r.Timestamp != nil {
			if prev, ok := driverIn[r.Plate]; !ok || r.Timestamp.Before(prev) {
				driverIn[r.Plate] = *r.Timestamp
			}
		}
		if _, ok := phones[r.Plate]; !ok && r.Phone != nil {
			phones[r.Plate] = r.Phone
		}
	}

	securityW := e.filterSecurity(snap.Security, q.Window)
	gateIn := make(map[string]time.Time)
	gateOut := make(map[string]time.Time)
	for _, r := range securityW {
		if r.Timestamp == nil {
			continue
		}
		if prev, ok := gateIn[r.Plate]; !ok || r.Timestamp.Before(prev) {
			gateIn[r.Plate] = *r.Timestamp
		}
		if prev, ok := gateOut[r.Plate]; !ok || r.Timestamp.After(prev) {
			gateOut[r.Plate] = *r.Timestamp
		}
	}

	plates := make([]string, 0, len(buckets))
	for plate := range buckets {
		plates = append(plates, plate)
	}
	sort.Strings(plates)

	out := make([]model.TruckTurnaround, 0, len(plates))
	for _, plate := range plates {
		b := buckets[plate]
		row := model.TruckTurnaround{
			Plate:        plate,
			Date:         b.date,
			ProductCount: len(b.productSet),
			Phone:        phones[plate],
		}
		if b.hasWaiting {
			v := b.waitingMin
			row.WaitingMin = &v
		}
		if b.hasLoading {
			v := b.loadingMin
			row.LoadingMin = &v
		}
		if hasWeight[plate] {
			v := weightPerTruck[plate]
			row.TotalWeightMT = &v
		}
		if t, ok := driverIn[plate]; ok {
			tt := t
			row.DriverInTime = &tt
		}
		if t, ok := lastDoc[plate]; ok {
			tt := t
			row.LastDocTime = &tt
		}
		if t, ok := gateIn[plate]; ok {
			tt := t
			row.GateInTime = &tt
		}
		if t, ok := gateOut[plate]; ok {
			tt := t
			row.GateOutTime = &tt
		}

		if row.LastDocTime != nil && row.DriverInTime != nil {
			v := row.LastDocTime.Sub(*row.DriverInTime).Minutes()
			row.DocumentationMin = &v
		}
		if row.GateOutTime != nil && row.GateInTime != nil {
			v := row.GateOutTime.Sub(*row.GateInTime).Minutes()
			row.TurnaroundMin = &v
		}
		row.ProcessingMin = sumPresent(row.WaitingMin, row.LoadingMin, row.DocumentationMin)
		if row.TurnaroundMin != nil && row.ProcessingMin != nil {
			v := *row.TurnaroundMin - *row.ProcessingMin
			row.DwellingMin = &v
		}
		out = append(out, row)
	}
	return out
}

// sumPresent adds the components that exist; all absent means no claim.
func sumPresent(values ...*float64) *float64 {
	total := 0.0
	present := false
	for _, v := range values {
		if v != nil {
			total += *v
			present = true
		}
	}
	if !present {
		return nil
	}
	return &total
}
