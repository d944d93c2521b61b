package model

import "time"

// Status is a truck lifecycle stage reported by the yard status log.
type Status string

const (
	StatusArrival      Status = "Arrival"
	StatusStartLoading Status = "Start_Loading"
	StatusCompleted    Status = "Completed"
)

// Direction says whether a truck came to pick up or drop off cargo.
type Direction string

const (
	DirectionLoading   Direction = "Loading"
	DirectionUnloading Direction = "Unloading"
)

// GateAction is the side of a gate crossing recorded by security.
type GateAction string

const (
	GateIn  GateAction = "Gate_in"
	GateOut GateAction = "Gate_out"
)

// StatusEvent is one row of the yard status log. Product and Timestamp may be
// missing on malformed rows; the engine treats absence as data, not an error.
type StatusEvent struct {
	Plate     string
	Product   *string
	Status    Status
	Timestamp *time.Time
}

// SecurityScan is one gate crossing from the security log.
type SecurityScan struct {
	Plate     string
	Timestamp *time.Time
	Direction *Direction
	Gate      *GateAction
	Phone     *string
}

// DriverCheckin is one driver registration from the driver log.
type DriverCheckin struct {
	Plate      string
	Timestamp  *time.Time
	DriverName *string
	Phone      *string
}

// LogisticEntry is one weighing/documentation row from the logistics log.
// Several entries per (plate, product, date) are normal; weights are summed.
type LogisticEntry struct {
	Plate      string
	Product    *string
	Timestamp  *time.Time
	WeightMT   *float64
	DeliveryNo *string
	Condition  *string
}

// Snapshot holds one self-consistent capture of all four source tables. The
// engine never mutates a snapshot; every computation is a pure function of it.
type Snapshot struct {
	Security []SecurityScan
	Driver   []DriverCheckin
	Status   []StatusEvent
	Logistic []LogisticEntry
}
