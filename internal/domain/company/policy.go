package company

import (
	"fmt"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayFrequency string

const (
	PayFrequencyWeekly      PayFrequency = "weekly"
	PayFrequencyBiweekly    PayFrequency = "biweekly"
	PayFrequencySemimonthly PayFrequency = "semimonthly"
	PayFrequencyMonthly     PayFrequency = "monthly"
)

func (f PayFrequency) IsValid() bool {
	switch f {
	case PayFrequencyWeekly, PayFrequencyBiweekly, PayFrequencySemimonthly, PayFrequencyMonthly:
		return true
	}
	return false
}

const (
	MinStandardWorkHours = 1
	MaxStandardWorkHours = 60
)

var (
	MinOvertimeMultiplier = decimal.NewFromInt(1)
	MaxOvertimeMultiplier = decimal.NewFromInt(5)
)

// PayrollPolicy is a company's payroll configuration.
// StandardWorkHours is informational; daily overtime is fixed at eight hours.
type PayrollPolicy struct {
	PayFrequency       PayFrequency
	StandardWorkHours  int
	OvertimeMultiplier decimal.Decimal
	AutoProcessPayroll bool
	PayPeriodEnd       *time.Time
}

func DefaultPayrollPolicy() PayrollPolicy {
	return PayrollPolicy{
		PayFrequency:       PayFrequencyMonthly,
		StandardWorkHours:  40,
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
	}
}

func (p PayrollPolicy) Validate() error {
	var errs validator.ValidationErrors

	if !p.PayFrequency.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "pay_frequency", Message: "must be one of weekly, biweekly, semimonthly, monthly"})
	}
	if p.StandardWorkHours < MinStandardWorkHours || p.StandardWorkHours > MaxStandardWorkHours {
		errs = append(errs, validator.ValidationError{Field: "standard_work_hours", Message: "must be between 1 and 60"})
	}
	if !validator.IsDecimalInRange(p.OvertimeMultiplier, MinOvertimeMultiplier, MaxOvertimeMultiplier) {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be between 1.0 and 5.0"})
	} else if !validator.HasMaxDecimalPlaces(p.OvertimeMultiplier, 2) {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must have at most two decimal places"})
	}
	if p.AutoProcessPayroll && p.PayPeriodEnd == nil {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "is required when auto processing is enabled"})
	}
	if p.PayFrequency == PayFrequencySemimonthly && p.PayPeriodEnd != nil {
		if day := p.PayPeriodEnd.Day(); day != 15 && !isLastDayOfMonth(*p.PayPeriodEnd) {
			errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be the 15th or the last day of a month for semimonthly pay"})
		}
	}
	if p.PayFrequency == PayFrequencyMonthly && p.PayPeriodEnd != nil {
		if p.PayPeriodEnd.Day() > 28 && !isLastDayOfMonth(*p.PayPeriodEnd) {
			errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be on or before the 28th or the last day of a month for monthly pay"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OvertimeRateFor derives the overtime hourly rate from a base hourly rate.
func (p PayrollPolicy) OvertimeRateFor(hourlyRate decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(p.OvertimeMultiplier)
}

// PeriodEnding returns the first day of the pay period that closes on end.
func (p PayrollPolicy) PeriodEnding(end time.Time) (time.Time, time.Time, error) {
	end = dateOnly(end)

	switch p.PayFrequency {
	case PayFrequencyWeekly:
		return end.AddDate(0, 0, -6), end, nil
	case PayFrequencyBiweekly:
		return end.AddDate(0, 0, -13), end, nil
	case PayFrequencySemimonthly:
		if end.Day() <= 15 {
			return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), end, nil
		}
		return time.Date(end.Year(), end.Month(), 16, 0, 0, 0, 0, time.UTC), end, nil
	case PayFrequencyMonthly:
		if isLastDayOfMonth(end) {
			return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), end, nil
		}
		return addMonthsClamped(end, -1).AddDate(0, 0, 1), end, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPayFrequency, p.PayFrequency)
}

// NextPeriodEnd advances a period end date by one pay cycle.
func (p PayrollPolicy) NextPeriodEnd(end time.Time) (time.Time, error) {
	end = dateOnly(end)

	switch p.PayFrequency {
	case PayFrequencyWeekly:
		return end.AddDate(0, 0, 7), nil
	case PayFrequencyBiweekly:
		return end.AddDate(0, 0, 14), nil
	case PayFrequencySemimonthly:
		if end.Day() <= 15 {
			return lastDayOfMonth(end), nil
		}
		next := time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return next.AddDate(0, 0, 14), nil
	case PayFrequencyMonthly:
		if isLastDayOfMonth(end) {
			return lastDayOfMonth(time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, time.UTC)), nil
		}
		return addMonthsClamped(end, 1), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPayFrequency, p.PayFrequency)
}

// IsDue reports whether the scheduled run for the configured period should happen at now.
// A period is processed once its end date has fully passed.
func (p PayrollPolicy) IsDue(now time.Time) bool {
	if !p.AutoProcessPayroll || p.PayPeriodEnd == nil {
		return false
	}
	return dateOnly(now).After(dateOnly(*p.PayPeriodEnd))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

func isLastDayOfMonth(t time.Time) bool {
	return t.Day() == lastDayOfMonth(t).Day()
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := lastDayOfMonth(first).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
