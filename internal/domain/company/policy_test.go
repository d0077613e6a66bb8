package company

import (
	"testing"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultPayrollPolicy(t *testing.T) {
	p := DefaultPayrollPolicy()

	assert.Equal(t, PayFrequencyMonthly, p.PayFrequency)
	assert.Equal(t, 40, p.StandardWorkHours)
	assert.Equal(t, "1.5", p.OvertimeMultiplier.String())
	assert.False(t, p.AutoProcessPayroll)
	assert.NoError(t, p.Validate())
}

func TestPayrollPolicy_Validate(t *testing.T) {
	end := day(2024, 3, 20)
	tests := []struct {
		name   string
		mutate func(*PayrollPolicy)
		field  string
	}{
		{"unknown frequency", func(p *PayrollPolicy) { p.PayFrequency = "daily" }, "pay_frequency"},
		{"zero standard hours", func(p *PayrollPolicy) { p.StandardWorkHours = 0 }, "standard_work_hours"},
		{"too many standard hours", func(p *PayrollPolicy) { p.StandardWorkHours = 61 }, "standard_work_hours"},
		{"multiplier below one", func(p *PayrollPolicy) { p.OvertimeMultiplier = decimal.RequireFromString("0.9") }, "overtime_multiplier"},
		{"multiplier above five", func(p *PayrollPolicy) { p.OvertimeMultiplier = decimal.RequireFromString("5.5") }, "overtime_multiplier"},
		{"multiplier precision", func(p *PayrollPolicy) { p.OvertimeMultiplier = decimal.RequireFromString("1.555") }, "overtime_multiplier"},
		{"auto process without end", func(p *PayrollPolicy) { p.AutoProcessPayroll = true }, "pay_period_end"},
		{"semimonthly mid-month end", func(p *PayrollPolicy) {
			p.PayFrequency = PayFrequencySemimonthly
			p.PayPeriodEnd = &end
		}, "pay_period_end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPayrollPolicy()
			tt.mutate(&p)

			err := p.Validate()
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	p := DefaultPayrollPolicy()
	p.OvertimeMultiplier = decimal.NewFromInt(1)
	assert.NoError(t, p.Validate(), "multiplier of exactly 1.0 is allowed")
}

func TestPayrollPolicy_OvertimeRateFor(t *testing.T) {
	p := DefaultPayrollPolicy()
	assert.Equal(t, "37.5", p.OvertimeRateFor(decimal.NewFromInt(25)).String())

	p.OvertimeMultiplier = decimal.NewFromInt(2)
	assert.Equal(t, "50", p.OvertimeRateFor(decimal.NewFromInt(25)).String())
}

func TestPayrollPolicy_PeriodEnding(t *testing.T) {
	tests := []struct {
		freq      PayFrequency
		end       time.Time
		wantStart time.Time
	}{
		{PayFrequencyWeekly, day(2024, 3, 10), day(2024, 3, 4)},
		{PayFrequencyBiweekly, day(2024, 3, 10), day(2024, 2, 26)},
		{PayFrequencySemimonthly, day(2024, 3, 15), day(2024, 3, 1)},
		{PayFrequencySemimonthly, day(2024, 2, 29), day(2024, 2, 16)},
		{PayFrequencyMonthly, day(2024, 2, 29), day(2024, 2, 1)},
		{PayFrequencyMonthly, day(2024, 3, 15), day(2024, 2, 16)},
	}

	for _, tt := range tests {
		p := PayrollPolicy{PayFrequency: tt.freq}
		start, end, err := p.PeriodEnding(tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.wantStart, start, "%s ending %s", tt.freq, tt.end.Format(time.DateOnly))
		assert.Equal(t, tt.end, end)
	}

	_, _, err := PayrollPolicy{PayFrequency: "daily"}.PeriodEnding(day(2024, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidPayFrequency)
}

func TestPayrollPolicy_NextPeriodEnd_IsContiguous(t *testing.T) {
	tests := []struct {
		freq  PayFrequency
		end   time.Time
		wants []time.Time
	}{
		{PayFrequencyWeekly, day(2024, 3, 10), []time.Time{day(2024, 3, 17), day(2024, 3, 24)}},
		{PayFrequencyBiweekly, day(2024, 3, 10), []time.Time{day(2024, 3, 24), day(2024, 4, 7)}},
		{PayFrequencySemimonthly, day(2024, 1, 31), []time.Time{day(2024, 2, 15), day(2024, 2, 29), day(2024, 3, 15)}},
		{PayFrequencyMonthly, day(2024, 1, 31), []time.Time{day(2024, 2, 29), day(2024, 3, 31), day(2024, 4, 30)}},
		{PayFrequencyMonthly, day(2024, 1, 25), []time.Time{day(2024, 2, 25), day(2024, 3, 25)}},
	}

	for _, tt := range tests {
		p := PayrollPolicy{PayFrequency: tt.freq}
		prev := tt.end
		for _, want := range tt.wants {
			next, err := p.NextPeriodEnd(prev)
			require.NoError(t, err)
			assert.Equal(t, want, next, "%s after %s", tt.freq, prev.Format(time.DateOnly))

			start, _, err := p.PeriodEnding(next)
			require.NoError(t, err)
			assert.Equal(t, prev.AddDate(0, 0, 1), start, "period ending %s starts the day after the previous end", next.Format(time.DateOnly))
			prev = next
		}
	}
}

func TestPayrollPolicy_IsDue(t *testing.T) {
	end := day(2024, 3, 31)
	p := DefaultPayrollPolicy()
	p.PayPeriodEnd = &end

	assert.False(t, p.IsDue(day(2024, 4, 2)), "auto processing disabled")

	p.AutoProcessPayroll = true
	assert.False(t, p.IsDue(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.True(t, p.IsDue(time.Date(2024, 4, 1, 0, 30, 0, 0, time.UTC)))

	p.PayPeriodEnd = nil
	assert.False(t, p.IsDue(day(2024, 4, 2)))
}

func TestUpdatePayrollPolicyRequest_Apply(t *testing.T) {
	freq := "weekly"
	hours := 37
	end := "2024-03-10"
	req := UpdatePayrollPolicyRequest{PayFrequency: &freq, StandardWorkHours: &hours, PayPeriodEnd: &end}
	require.NoError(t, req.Validate())

	p := req.Apply(DefaultPayrollPolicy())
	assert.Equal(t, PayFrequencyWeekly, p.PayFrequency)
	assert.Equal(t, 37, p.StandardWorkHours)
	assert.Equal(t, "1.5", p.OvertimeMultiplier.String())
	require.NotNil(t, p.PayPeriodEnd)
	assert.Equal(t, day(2024, 3, 10), *p.PayPeriodEnd)

	empty := ""
	p = (&UpdatePayrollPolicyRequest{PayPeriodEnd: &empty}).Apply(p)
	assert.Nil(t, p.PayPeriodEnd)

	bad := "monthly-ish"
	assert.Error(t, (&UpdatePayrollPolicyRequest{PayFrequency: &bad}).Validate())
}
