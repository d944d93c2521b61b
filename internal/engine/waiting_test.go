package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isisteel/yard-turnaround/internal/model"
)

func fixedClock(t *testing.T, value string) Option {
	now := ts(t, value)
	return WithClock(func() time.Time { return now })
}

func TestCurrentWaitingLatestWins(t *testing.T) {
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			// First cycle: arrived, loaded, completed.
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 08:00:00"),
			statusEvent(t, "3A-1111", "Pipe", model.StatusStartLoading, "2025-03-10 08:30:00"),
			statusEvent(t, "3A-1111", "Pipe", model.StatusCompleted, "2025-03-10 09:00:00"),
			// Second cycle: arrived again, still queuing.
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 13:00:00"),
			// This truck finished and stays off the waiting list.
			statusEvent(t, "4B-2222", "Coil", model.StatusArrival, "2025-03-10 10:00:00"),
			statusEvent(t, "4B-2222", "Coil", model.StatusCompleted, "2025-03-10 11:00:00"),
		},
	}

	e := New(time.UTC, fixedClock(t, "2025-03-10 14:00:00"))
	waiting := e.CurrentWaiting(snap, date(2025, time.March, 10), Query{})
	require.Len(t, waiting, 1)

	row := waiting[0]
	assert.Equal(t, "3A-1111", row.Plate)
	require.NotNil(t, row.Product)
	assert.Equal(t, "Pipe", *row.Product)
	assert.InDelta(t, 60, row.WaitingMin, 1e-9)
}

func TestCurrentWaitingSortedByWaitDescending(t *testing.T) {
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 09:00:00"),
			statusEvent(t, "4B-2222", "Coil", model.StatusArrival, "2025-03-10 07:00:00"),
		},
	}

	e := New(time.UTC, fixedClock(t, "2025-03-10 10:00:00"))
	waiting := e.CurrentWaiting(snap, date(2025, time.March, 10), Query{})
	require.Len(t, waiting, 2)
	assert.Equal(t, "4B-2222", waiting[0].Plate)
	assert.InDelta(t, 180, waiting[0].WaitingMin, 1e-9)
	assert.Equal(t, "3A-1111", waiting[1].Plate)
}

func TestCurrentWaitingProductFilter(t *testing.T) {
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 09:00:00"),
			statusEvent(t, "4B-2222", "Coil", model.StatusArrival, "2025-03-10 09:00:00"),
		},
	}

	e := New(time.UTC, fixedClock(t, "2025-03-10 10:00:00"))
	waiting := e.CurrentWaiting(snap, date(2025, time.March, 10), Query{Products: []string{"Coil"}})
	require.Len(t, waiting, 1)
	assert.Equal(t, "4B-2222", waiting[0].Plate)
}

func TestCurrentWaitingJoinsAttributes(t *testing.T) {
	loading := model.DirectionLoading
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 09:00:00"),
		},
		Security: []model.SecurityScan{
			{Plate: "3A-1111", Timestamp: tsPtr(t, "2025-03-10 08:45:00"), Direction: &loading},
		},
		Driver: []model.DriverCheckin{
			{Plate: "3A-1111", Timestamp: tsPtr(t, "2025-03-10 08:50:00"), DriverName: strPtr("Driver A"), Phone: strPtr("010123456")},
		},
		Logistic: []model.LogisticEntry{
			{Plate: "3A-1111", Product: strPtr("Pipe"), Timestamp: tsPtr(t, "2025-03-10 09:30:00"), WeightMT: f(4.5), DeliveryNo: strPtr("DN-100")},
		},
	}

	e := New(time.UTC, fixedClock(t, "2025-03-10 10:00:00"))
	waiting := e.CurrentWaiting(snap, date(2025, time.March, 10), Query{})
	require.Len(t, waiting, 1)

	row := waiting[0]
	require.NotNil(t, row.Direction)
	assert.Equal(t, model.DirectionLoading, *row.Direction)
	require.NotNil(t, row.WeightMT)
	assert.InDelta(t, 4.5, *row.WeightMT, 1e-9)
	require.NotNil(t, row.DeliveryNo)
	assert.Equal(t, "DN-100", *row.DeliveryNo)
	require.NotNil(t, row.DriverName)
	assert.Equal(t, "Driver A", *row.DriverName)
}

func TestStatusSummaryCountsLatestStage(t *testing.T) {
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			// Waiting.
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 09:00:00"),
			// Progressed to loading.
			statusEvent(t, "4B-2222", "Coil", model.StatusArrival, "2025-03-10 08:00:00"),
			statusEvent(t, "4B-2222", "Coil", model.StatusStartLoading, "2025-03-10 08:30:00"),
			// Completed.
			statusEvent(t, "5C-3333", "Pipe", model.StatusArrival, "2025-03-10 07:00:00"),
			statusEvent(t, "5C-3333", "Pipe", model.StatusCompleted, "2025-03-10 08:00:00"),
			// Yesterday, out of scope.
			statusEvent(t, "6D-4444", "Pipe", model.StatusArrival, "2025-03-09 07:00:00"),
		},
	}

	e := New(time.UTC)
	counts := e.StatusSummary(snap, date(2025, time.March, 10), Query{})
	assert.Equal(t, 1, counts.Waiting)
	assert.Equal(t, 1, counts.StartLoading)
	assert.Equal(t, 1, counts.Completed)
}

func TestStatusSummaryProductFilter(t *testing.T) {
	snap := model.Snapshot{
		Status: []model.StatusEvent{
			statusEvent(t, "3A-1111", "Pipe", model.StatusArrival, "2025-03-10 09:00:00"),
			statusEvent(t, "4B-2222", "Coil", model.StatusArrival, "2025-03-10 09:00:00"),
		},
	}

	e := New(time.UTC)
	counts := e.StatusSummary(snap, date(2025, time.March, 10), Query{Products: []string{"Pipe"}})
	assert.Equal(t, model.StatusCounts{Waiting: 1}, counts)
}
