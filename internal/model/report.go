package model

import "time"

// TurnaroundReport is the material for one export download: the visit table
// plus both summary views for the selected period.
type TurnaroundReport struct {
	PeriodStart Date
	PeriodEnd   Date
	GeneratedAt time.Time

	Visits   []Visit
	Products []ProductSummary
	Trucks   []TruckTurnaround
}
