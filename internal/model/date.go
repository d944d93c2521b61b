package model

import (
	"fmt"
	"time"
)

// Date is a calendar date in the yard's local timezone. All date attribution
// in the engine goes through DateOf so that rows recorded near midnight land
// on the correct local day regardless of the host timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func ParseDate(raw string) (Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}
