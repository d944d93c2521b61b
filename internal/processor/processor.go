// Package processor turns raw sheet exports into typed source records:
// canonical column names, normalized plates, cleaned Khmer categories and
// timezone-aware timestamps. Malformed cells become nil fields, never errors.
package processor

import (
	"strconv"
	"strings"
	"time"

	"github.com/isisteel/yard-turnaround/internal/model"
	"github.com/isisteel/yard-turnaround/internal/normalize"
)

type Processor struct {
	loc *time.Location
}

func New(loc *time.Location) *Processor {
	return &Processor{loc: loc}
}

// Clean converts one raw fetch into a typed snapshot. Rows whose plate is
// empty after normalization are dropped: they cannot join anything.
func (p *Processor) Clean(raw model.RawTables) model.Snapshot {
	return model.Snapshot{
		Security: p.cleanSecurity(raw.Security),
		Driver:   p.cleanDriver(raw.Driver),
		Status:   p.cleanStatus(raw.Status),
		Logistic: p.cleanLogistic(raw.Logistic),
	}
}

func (p *Processor) cleanSecurity(table model.RawTable) []model.SecurityScan {
	cols := indexColumns(table.Header, securityRename)
	out := make([]model.SecurityScan, 0, len(table.Rows))
	for _, row := range table.Rows {
		plate := normalize.Plate(cols.value(row, colPlate))
		if plate == "" {
			continue
		}
		scan := model.SecurityScan{
			Plate:     plate,
			Timestamp: p.parseTimestamp(cols.value(row, colTimestamp)),
			Phone:     optionalString(cols.value(row, colPhone)),
		}
		if v := normalize.Text(cols.value(row, colDirection)); v != "" {
			d, ok := directionMap[v]
			if !ok {
				d = model.Direction(v)
			}
			scan.Direction = &d
		}
		if v := normalize.Text(cols.value(row, colScan)); v != "" {
			g, ok := gateMap[v]
			if !ok {
				g = model.GateAction(v)
			}
			scan.Gate = &g
		}
		out = append(out, scan)
	}
	return out
}

func (p *Processor) cleanDriver(table model.RawTable) []model.DriverCheckin {
	cols := indexColumns(table.Header, driverRename)
	out := make([]model.DriverCheckin, 0, len(table.Rows))
	for _, row := range table.Rows {
		plate := normalize.Plate(cols.value(row, colPlate))
		if plate == "" {
			continue
		}
		out = append(out, model.DriverCheckin{
			Plate:      plate,
			Timestamp:  p.parseTimestamp(cols.value(row, colTimestamp)),
			DriverName: optionalString(normalize.Text(cols.value(row, colDriverName))),
			Phone:      optionalString(cols.value(row, colPhone)),
		})
	}
	return out
}

func (p *Processor) cleanStatus(table model.RawTable) []model.StatusEvent {
	cols := indexColumns(table.Header, statusRename)
	out := make([]model.StatusEvent, 0, len(table.Rows))
	for _, row := range table.Rows {
		plate := normalize.Plate(cols.value(row, colPlate))
		if plate == "" {
			continue
		}
		event := model.StatusEvent{
			Plate:     plate,
			Product:   cleanProduct(cols.value(row, colProduct)),
			Timestamp: p.parseTimestamp(cols.value(row, colTimestamp)),
		}
		if v := normalize.Text(cols.value(row, colStatus)); v != "" {
			s, ok := statusMap[v]
			if !ok {
				s = model.Status(v)
			}
			event.Status = s
		}
		out = append(out, event)
	}
	return out
}

func (p *Processor) cleanLogistic(table model.RawTable) []model.LogisticEntry {
	cols := indexColumns(table.Header, logisticRename)
	out := make([]model.LogisticEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		plate := normalize.Plate(cols.value(row, colPlate))
		if plate == "" {
			continue
		}
		out = append(out, model.LogisticEntry{
			Plate:      plate,
			Product:    cleanProduct(cols.value(row, colProduct)),
			Timestamp:  p.parseTimestamp(cols.value(row, colTimestamp)),
			WeightMT:   parseFloat(cols.value(row, colWeight)),
			DeliveryNo: optionalString(cols.value(row, colDeliveryNo)),
			Condition:  optionalString(normalize.Text(cols.value(row, colCondition))),
		})
	}
	return out
}

// timestampLayouts covers the formats the sheet exports have been seen to
// produce: form submissions, manual edits and re-saved CSVs.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	time.RFC3339,
}

func (p *Processor) parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, p.loc); err == nil {
			return &t
		}
	}
	return nil
}

func cleanProduct(raw string) *string {
	v := normalize.Text(raw)
	if v == "" {
		return nil
	}
	if mapped, ok := productMap[v]; ok {
		v = mapped
	}
	return &v
}

func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// columnIndex resolves canonical column names to cell positions for one
// sheet. Khmer headers are renamed; canonical headers pass through, so a
// sheet that is already in canonical form needs no map entry.
type columnIndex map[string]int

func indexColumns(header []string, rename map[string]string) columnIndex {
	index := make(columnIndex, len(header))
	for i, h := range header {
		name := normalize.Text(h)
		if canonical, ok := rename[name]; ok {
			name = canonical
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func (c columnIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
