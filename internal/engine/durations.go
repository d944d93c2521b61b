package engine

import (
	"math"
	"strings"
	"time"
)

// Order violation reasons, in check priority order.
const (
	orderErrCompletedBeforeStart   = "Completed before Start Loading"
	orderErrCompletedBeforeArrival = "Completed before Arrival"
	orderErrStartBeforeArrival     = "Start Loading before Arrival"
)

// ValidateOrder checks the chronological consistency of one visit's
// lifecycle timestamps. The pipeline is descriptive: a violation is reported,
// never rejected or repaired. All timestamps absent means no claim is made,
// so the order counts as valid.
func ValidateOrder(arrival, start, completed *time.Time) (bool, string) {
	if completed != nil && start != nil && completed.Before(*start) {
		return false, orderErrCompletedBeforeStart
	}
	if completed != nil && arrival != nil && completed.Before(*arrival) {
		return false, orderErrCompletedBeforeArrival
	}
	if start != nil && arrival != nil && start.Before(*arrival) {
		return false, orderErrStartBeforeArrival
	}
	return true, ""
}

// minutesBetween is the absolute gap in minutes, nil if either end is absent.
// Out-of-order pairs still produce a magnitude; ValidateOrder carries the
// direction information separately.
func minutesBetween(from, to *time.Time) *float64 {
	if from == nil || to == nil {
		return nil
	}
	m := math.Abs(to.Sub(*from).Minutes())
	return &m
}

// totalMinutes composes the visit total: waiting plus loading when both are
// known, loading alone otherwise. Waiting without a loading phase yields no
// total; a visit is not done until it loaded.
func totalMinutes(waiting, loading *float64) *float64 {
	if loading == nil {
		return nil
	}
	if waiting == nil {
		v := *loading
		return &v
	}
	v := *waiting + *loading
	return &v
}

const qualityOK = "OK"

func qualityFlag(arrival, start, completed *time.Time) string {
	var missing []string
	if arrival == nil {
		missing = append(missing, "Missing_Arrival")
	}
	if start == nil {
		missing = append(missing, "Missing_Start")
	}
	if completed == nil {
		missing = append(missing, "Missing_Completed")
	}
	if len(missing) == 0 {
		return qualityOK
	}
	return strings.Join(missing, ";")
}

// missionLabel summarizes how far a visit progressed, for the durations view.
func missionLabel(start, completed *time.Time) string {
	if completed != nil {
		return "Done"
	}
	if start == nil {
		return "Missing Start loading, completed"
	}
	return "Missing Completed"
}
