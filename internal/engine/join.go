package engine

import (
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
)

// tripleKey scopes logistics attributes to one visit. Joining by plate alone
// would leak one product's weight into another product's visit on the same
// day, or yesterday's paperwork into today's trip.
type tripleKey struct {
	plate   string
	product string // "" when the product is unknown
	date    model.Date
}

type logisticAttrs struct {
	weightMT   float64
	hasWeight  bool
	deliveryNo *string
	condition  *string
}

// logisticByTriple folds the full logistics history into per-(plate, product,
// date) attributes: weights summed, delivery number and condition first-seen.
func (e *Engine) logisticByTriple(rows []model.LogisticEntry) map[tripleKey]logisticAttrs {
	out := make(map[tripleKey]logisticAttrs)
	for _, r := range rows {
		d := e.dateOf(r.Timestamp)
		if d == nil {
			continue
		}
		k := tripleKey{plate: r.Plate, product: derefOrEmpty(r.Product), date: *d}
		attrs := out[k]
		if r.WeightMT != nil {
			attrs.weightMT += *r.WeightMT
			attrs.hasWeight = true
		}
		if attrs.deliveryNo == nil && r.DeliveryNo != nil {
			attrs.deliveryNo = r.DeliveryNo
		}
		if attrs.condition == nil && r.Condition != nil {
			attrs.condition = r.Condition
		}
		out[k] = attrs
	}
	return out
}

// directionIndex answers "was this truck loading or unloading" in two tiers:
// a scan on the visit's own date wins, otherwise the truck's first-ever known
// direction. Gate scans and yard status events are not perfectly aligned, so
// a same-day gate record may be missing while history is still informative.
type directionIndex struct {
	byDate    map[plateDateKey]model.Direction
	firstEver map[string]model.Direction
}

type plateDateKey struct {
	plate string
	date  model.Date
}

func (e *Engine) indexDirections(rows []model.SecurityScan) directionIndex {
	idx := directionIndex{
		byDate:    make(map[plateDateKey]model.Direction),
		firstEver: make(map[string]model.Direction),
	}
	firstTS := make(map[string]time.Time)
	dateTS := make(map[plateDateKey]time.Time)

	for _, r := range rows {
		if r.Direction == nil || r.Timestamp == nil {
			continue
		}
		if prev, ok := firstTS[r.Plate]; !ok || r.Timestamp.Before(prev) {
			firstTS[r.Plate] = *r.Timestamp
			idx.firstEver[r.Plate] = *r.Direction
		}
		k := plateDateKey{plate: r.Plate, date: model.DateOf(*r.Timestamp, e.loc)}
		if prev, ok := dateTS[k]; !ok || r.Timestamp.Before(prev) {
			dateTS[k] = *r.Timestamp
			idx.byDate[k] = *r.Direction
		}
	}
	return idx
}

func (idx directionIndex) lookup(plate string, date *model.Date) *model.Direction {
	if date != nil {
		if d, ok := idx.byDate[plateDateKey{plate: plate, date: *date}]; ok {
			return &d
		}
	}
	if d, ok := idx.firstEver[plate]; ok {
		return &d
	}
	return nil
}

type contactInfo struct {
	driverName *string
	phone      *string
}

// indexContacts picks the latest driver check-in per plate; phone falls back
// to the security contact field when the driver log never named one. Contact
// info is truck-level, so the join is by plate only.
func indexContacts(drivers []model.DriverCheckin, security []model.SecurityScan) map[string]contactInfo {
	out := make(map[string]contactInfo)
	latest := make(map[string]time.Time)

	for _, r := range drivers {
		ts := time.Time{}
		if r.Timestamp != nil {
			ts = *r.Timestamp
		}
		if prev, seen := latest[r.Plate]; seen && !ts.After(prev) {
			continue
		}
		latest[r.Plate] = ts
		out[r.Plate] = contactInfo{driverName: r.DriverName, phone: r.Phone}
	}

	for _, r := range security {
		if r.Phone == nil {
			continue
		}
		info, seen := out[r.Plate]
		if seen && info.phone != nil {
			continue
		}
		info.phone = r.Phone
		out[r.Plate] = info
	}
	return out
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
