package model

import "time"

// ProductSummary aggregates visit rows by (product, direction).
type ProductSummary struct {
	Product   *string
	Direction *Direction

	TruckCount      int
	TotalWeightMT   float64
	TotalLoadingMin float64

	// Rates are nil, not zero, when their denominator is zero or missing.
	LoadingRateMinPerMT *float64
	LoadingRateMTPerHr  *float64
}

// TruckTurnaround aggregates one truck's day across products: how long it
// spent inside the yard and how much of that time is accounted for.
type TruckTurnaround struct {
	Plate        string
	Date         *Date
	ProductCount int

	TotalWeightMT *float64
	WaitingMin    *float64
	LoadingMin    *float64

	DriverInTime *time.Time
	LastDocTime  *time.Time
	GateInTime   *time.Time
	GateOutTime  *time.Time

	DocumentationMin *float64
	TurnaroundMin    *float64
	ProcessingMin    *float64
	DwellingMin      *float64

	Phone *string
}

// StatusCounts counts trucks by their latest lifecycle stage in the window.
type StatusCounts struct {
	Waiting      int
	StartLoading int
	Completed    int
}

// WaitingTruck is a truck whose newest status event in the window is Arrival,
// i.e. it is still queuing for a loading bay.
type WaitingTruck struct {
	Plate       string
	Product     *string
	Date        *Date
	ArrivalTime *time.Time
	WaitingMin  float64

	Direction  *Direction
	WeightMT   *float64
	DeliveryNo *string
	Phone      *string
	DriverName *string
}
