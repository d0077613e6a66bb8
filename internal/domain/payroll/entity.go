package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusProcessed || s == StatusPaid
}

// Period is an inclusive date range of a pay cycle.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: dateOnly(start), End: dateOnly(end)}
	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod,
			p.End.Format(time.DateOnly), p.Start.Format(time.DateOnly))
	}
	return p, nil
}

func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + "_" + p.End.Format(time.DateOnly)
}

// PayrollRecord is one employee's paycheck for one pay period.
type PayrollRecord struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	PayDate        time.Time

	RegularHours           decimal.Decimal
	OvertimeHours          decimal.Decimal
	HourlyRate             decimal.Decimal
	OvertimeRate           decimal.Decimal
	HealthInsurance        decimal.Decimal
	RetirementContribution decimal.Decimal
	OtherDeductions        decimal.Decimal

	GrossPay          decimal.Decimal
	FederalTax        decimal.Decimal
	StateTax          decimal.Decimal
	SocialSecurityTax decimal.Decimal
	MedicareTax       decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal

	Status      Status
	Notes       *string
	ProcessedAt *time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}

// NewPayrollRecord computes a draft record for an employee and period.
func NewPayrollRecord(companyID, employeeID string, period Period, payDate time.Time, in PaycheckInput) (PayrollRecord, error) {
	paycheck, err := CalculatePaycheck(in)
	if err != nil {
		return PayrollRecord{}, err
	}

	r := PayrollRecord{
		CompanyID:      companyID,
		EmployeeID:     employeeID,
		PayPeriodStart: period.Start,
		PayPeriodEnd:   period.End,
		PayDate:        dateOnly(payDate),
		Status:         StatusDraft,
	}
	r.apply(paycheck)
	return r, nil
}

func (r PayrollRecord) Input() PaycheckInput {
	return PaycheckInput{
		RegularHours:           r.RegularHours,
		OvertimeHours:          r.OvertimeHours,
		HourlyRate:             r.HourlyRate,
		OvertimeRate:           r.OvertimeRate,
		HealthInsurance:        r.HealthInsurance,
		RetirementContribution: r.RetirementContribution,
		OtherDeductions:        r.OtherDeductions,
	}
}

// Paycheck rebuilds the itemized view of the stored values.
func (r PayrollRecord) Paycheck() Paycheck {
	return Paycheck{
		PaycheckInput:     r.Input(),
		RegularPay:        r.RegularHours.Mul(r.HourlyRate),
		OvertimePay:       r.OvertimeHours.Mul(r.OvertimeRate),
		GrossPay:          r.GrossPay,
		FederalTax:        r.FederalTax,
		StateTax:          r.StateTax,
		SocialSecurityTax: r.SocialSecurityTax,
		MedicareTax:       r.MedicareTax,
		TotalDeductions:   r.TotalDeductions,
		NetPay:            r.NetPay,
	}
}

func (r *PayrollRecord) apply(p Paycheck) {
	r.RegularHours = p.RegularHours
	r.OvertimeHours = p.OvertimeHours
	r.HourlyRate = p.HourlyRate
	r.OvertimeRate = p.OvertimeRate
	r.HealthInsurance = p.HealthInsurance
	r.RetirementContribution = p.RetirementContribution
	r.OtherDeductions = p.OtherDeductions
	r.GrossPay = p.GrossPay
	r.FederalTax = p.FederalTax
	r.StateTax = p.StateTax
	r.SocialSecurityTax = p.SocialSecurityTax
	r.MedicareTax = p.MedicareTax
	r.TotalDeductions = p.TotalDeductions
	r.NetPay = p.NetPay
}

// UpdateBenefits replaces the voluntary deductions and recomputes the whole paycheck.
func UpdateBenefits(r PayrollRecord, health, retirement, other decimal.Decimal) (PayrollRecord, error) {
	if !r.IsEditable() {
		return r, fmt.Errorf("%w: record is %s", ErrRecordNotEditable, r.Status)
	}

	in := r.Input()
	in.HealthInsurance = health
	in.RetirementContribution = retirement
	in.OtherDeductions = other

	paycheck, err := CalculatePaycheck(in)
	if err != nil {
		return r, err
	}
	r.apply(paycheck)
	return r, nil
}

// Process finalizes a draft record.
func Process(r PayrollRecord, at time.Time) (PayrollRecord, error) {
	if r.Status != StatusDraft {
		return r, fmt.Errorf("%w: cannot process a %s record", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusProcessed
	r.ProcessedAt = &at
	return r, nil
}

// MarkPaid records payout of a processed record.
func MarkPaid(r PayrollRecord, at time.Time) (PayrollRecord, error) {
	if r.Status != StatusProcessed {
		return r, fmt.Errorf("%w: cannot pay a %s record", ErrInvalidTransition, r.Status)
	}
	r.Status = StatusPaid
	r.PaidAt = &at
	return r, nil
}

func (r PayrollRecord) IsEditable() bool {
	return r.Status == StatusDraft
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
