package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isisteel/yard-turnaround/internal/model"
)

func TestCleanStatusTranslatesKhmerHeadersAndValues(t *testing.T) {
	raw := model.RawTables{
		Status: model.RawTable{
			Header: []string{"Timestamp", "ស្លាកលេខឡាន", "ប្រភេទទំនិញ", "Status"},
			Rows: [][]string{
				{"2025-03-10 08:00:00", "3a 1111", "ទីប ជ្រុង ទីបមូល", "មកដល់ច្រករង់ចាំ /Arrival"},
				{"2025-03-10 08:30:00", "3A.1111", "ដំរ៉ូឡូ", "ចាប់ផ្តើមឡើងឬទម្លាក់ទំនិញ /Start Loading"},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Status, 2)

	first := snap.Status[0]
	assert.Equal(t, "3A-1111", first.Plate)
	require.NotNil(t, first.Product)
	assert.Equal(t, "Pipe", *first.Product)
	assert.Equal(t, model.StatusArrival, first.Status)
	require.NotNil(t, first.Timestamp)
	assert.Equal(t, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), *first.Timestamp)

	second := snap.Status[1]
	assert.Equal(t, "3A-1111", second.Plate)
	require.NotNil(t, second.Product)
	assert.Equal(t, "Coil", *second.Product)
	assert.Equal(t, model.StatusStartLoading, second.Status)
}

func TestCleanStatusUnmappedValuesPassThrough(t *testing.T) {
	raw := model.RawTables{
		Status: model.RawTable{
			Header: []string{"Timestamp", "Truck_Plate_Number", "Product_Group", "Status"},
			Rows: [][]string{
				{"2025-03-10 08:00:00", "3A-1111", "Cement", "Weighing"},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Status, 1)
	assert.Equal(t, "Cement", *snap.Status[0].Product)
	assert.Equal(t, model.Status("Weighing"), snap.Status[0].Status)
}

func TestCleanDropsRowsWithoutPlate(t *testing.T) {
	raw := model.RawTables{
		Status: model.RawTable{
			Header: []string{"Timestamp", "Truck_Plate_Number", "Status"},
			Rows: [][]string{
				{"2025-03-10 08:00:00", "", "Arrival"},
				{"2025-03-10 08:00:00", "  -- ", "Arrival"},
				{"2025-03-10 08:00:00", "3A-1111", "Arrival"},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Status, 1)
	assert.Equal(t, "3A-1111", snap.Status[0].Plate)
}

func TestCleanSecurityMapsGateAndDirection(t *testing.T) {
	raw := model.RawTables{
		Security: model.RawTable{
			Header: []string{"Timestamp", "ស្លាកលេខឡាន", "អ្នកកំពុងស្កេនចេញ ឬ ចូល?", "អ្នកកមកឡើង ឬ ទម្លាក់ឥវ៉ាន់", "លេខទូរស័ព្វ"},
			Rows: [][]string{
				{"2025-03-10 07:45:00", "3A-1111", "ចូល", "ឡើង ទំនិញ", "010123456"},
				{"2025-03-10 10:00:00", "3A-1111", "ចេញ", "ទម្លាក់ ទំនិញ", ""},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Security, 2)

	in := snap.Security[0]
	require.NotNil(t, in.Gate)
	assert.Equal(t, model.GateIn, *in.Gate)
	require.NotNil(t, in.Direction)
	assert.Equal(t, model.DirectionLoading, *in.Direction)
	require.NotNil(t, in.Phone)
	assert.Equal(t, "010123456", *in.Phone)

	out := snap.Security[1]
	require.NotNil(t, out.Gate)
	assert.Equal(t, model.GateOut, *out.Gate)
	require.NotNil(t, out.Direction)
	assert.Equal(t, model.DirectionUnloading, *out.Direction)
	assert.Nil(t, out.Phone)
}

func TestCleanLogisticParsesWeightAndDelivery(t *testing.T) {
	raw := model.RawTables{
		Logistic: model.RawTable{
			Header: []string{"Timestamp", "ស្លាកលេខឡាន", "ប្រភេទទំនិញ", "Total Weight (MT)", "Outbound Delivery Nº", "Truck_Condition"},
			Rows: [][]string{
				{"2025-03-10 08:40:00", "3A-1111", "ស័ង្កសី", "1,250.5", "DN-100", "Good"},
				{"2025-03-10 08:50:00", "3A-1111", "ស័ង្កសី PU", "not-a-number", "", ""},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Logistic, 2)

	first := snap.Logistic[0]
	assert.Equal(t, "Roofing", *first.Product)
	require.NotNil(t, first.WeightMT)
	assert.InDelta(t, 1250.5, *first.WeightMT, 1e-9)
	assert.Equal(t, "DN-100", *first.DeliveryNo)
	assert.Equal(t, "Good", *first.Condition)

	second := snap.Logistic[1]
	assert.Equal(t, "PU", *second.Product)
	assert.Nil(t, second.WeightMT)
	assert.Nil(t, second.DeliveryNo)
	assert.Nil(t, second.Condition)
}

func TestCleanDriverLatestFieldsStayRaw(t *testing.T) {
	raw := model.RawTables{
		Driver: model.RawTable{
			Header: []string{"Timestamp", "ឈ្មោះ", "ស្លាកលេខឡាន", "លេខទូរស័ព្វ"},
			Rows: [][]string{
				{"2025-03-10 07:50:00", "  Driver A  ", "3a/1111", "010123456"},
			},
		},
	}

	p := New(time.UTC)
	snap := p.Clean(raw)
	require.Len(t, snap.Driver, 1)

	d := snap.Driver[0]
	assert.Equal(t, "3A-1111", d.Plate)
	assert.Equal(t, "Driver A", *d.DriverName)
	assert.Equal(t, "010123456", *d.Phone)
}

func TestParseTimestampLayoutsAndFailures(t *testing.T) {
	p := New(time.UTC)

	tests := []struct {
		raw  string
		want *time.Time
	}{
		{"2025-03-10 08:00:00", timePtr(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))},
		{"2025-03-10T08:00:00", timePtr(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))},
		{"3/10/2025 8:00:00", timePtr(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))},
		{"3/10/2025 8:00", timePtr(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))},
		{"2025-03-10", timePtr(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))},
		{"", nil},
		{"garbage", nil},
		{"2025-13-45 99:99:99", nil},
	}

	for _, tt := range tests {
		got := p.parseTimestamp(tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.raw)
		} else {
			require.NotNil(t, got, "input %q", tt.raw)
			assert.True(t, got.Equal(*tt.want), "input %q", tt.raw)
		}
	}
}

func TestParseTimestampUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Phnom_Penh")
	require.NoError(t, err)

	p := New(loc)
	got := p.parseTimestamp("2025-03-10 08:00:00")
	require.NotNil(t, got)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 8, got.Hour())
}

func TestIndexColumnsIgnoresInvisibleRunes(t *testing.T) {
	// A zero-width space slipped into the exported header.
	header := []string{"Timestamp", "ស្លាកលេខឡាន​", "Status"}
	cols := indexColumns(header, statusRename)

	row := []string{"2025-03-10 08:00:00", "3A-1111", "Arrival"}
	assert.Equal(t, "3A-1111", cols.value(row, colPlate))
}

func timePtr(t time.Time) *time.Time { return &t }
