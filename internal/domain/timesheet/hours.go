package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DailyThreshold is the number of worked hours per day paid at the regular rate.
var DailyThreshold = decimal.NewFromInt(8)

var secondsPerHour = decimal.NewFromInt(int64(time.Hour / time.Second))

// HourSplit is the regular/overtime breakdown of one day's worked time.
type HourSplit struct {
	Regular  decimal.Decimal
	Overtime decimal.Decimal
}

func (s HourSplit) Total() decimal.Decimal {
	return s.Regular.Add(s.Overtime)
}

// SplitDay computes worked hours for a same-day shift and splits them at DailyThreshold.
func SplitDay(start, end TimeOfDay, breakHours decimal.Decimal) (HourSplit, error) {
	if !start.IsValid() || !end.IsValid() {
		return HourSplit{}, fmt.Errorf("%w: times must fall within a single day", ErrInvalidTimeRange)
	}
	if end <= start {
		return HourSplit{}, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidTimeRange, end, start)
	}
	if breakHours.IsNegative() {
		return HourSplit{}, fmt.Errorf("%w: break hours cannot be negative", ErrInvalidAmount)
	}

	elapsed := decimal.NewFromInt(int64(end.Duration()-start.Duration()) / int64(time.Second)).Div(secondsPerHour)
	worked := elapsed.Sub(breakHours)
	if worked.IsNegative() {
		return HourSplit{}, fmt.Errorf("%w: break of %s hours exceeds shift length %s", ErrInvalidTimeRange, breakHours, elapsed)
	}

	if worked.GreaterThan(DailyThreshold) {
		return HourSplit{
			Regular:  DailyThreshold,
			Overtime: worked.Sub(DailyThreshold),
		}, nil
	}

	return HourSplit{Regular: worked, Overtime: decimal.Zero}, nil
}
