package model

import "time"

// Visit is one truck's engagement with one product on one calendar date,
// reconstructed from the four source logs. Rows are recomputed from scratch
// on every query and never persisted.
type Visit struct {
	Plate   string
	Product *string
	Date    *Date

	ArrivalTime      *time.Time
	StartLoadingTime *time.Time
	CompletedTime    *time.Time

	WaitingMin *float64
	LoadingMin *float64
	TotalMin   *float64

	IsValidOrder bool
	OrderError   *string
	// DataQuality is a semicolon-joined list of Missing_Arrival /
	// Missing_Start / Missing_Completed markers, or "OK".
	DataQuality string
	Mission     string

	WeightMT       *float64
	DeliveryNo     *string
	TruckCondition *string
	Direction      *Direction
	Phone          *string
	DriverName     *string

	LoadingRateMinPerMT *float64
	LoadingRateMTPerHr  *float64
}
