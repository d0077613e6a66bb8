package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Flat statutory withholding rates applied to gross pay.
var (
	FederalTaxRate        = decimal.RequireFromString("0.22")
	StateTaxRate          = decimal.RequireFromString("0.05")
	SocialSecurityTaxRate = decimal.RequireFromString("0.062")
	MedicareTaxRate       = decimal.RequireFromString("0.0145")
)

// MoneyPlaces is the precision paychecks are rounded to for display and storage.
const MoneyPlaces = 2

type PaycheckInput struct {
	RegularHours           decimal.Decimal
	OvertimeHours          decimal.Decimal
	HourlyRate             decimal.Decimal
	OvertimeRate           decimal.Decimal
	HealthInsurance        decimal.Decimal
	RetirementContribution decimal.Decimal
	OtherDeductions        decimal.Decimal
}

func (in PaycheckInput) validate() error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"regular hours", in.RegularHours},
		{"overtime hours", in.OvertimeHours},
		{"overtime rate", in.OvertimeRate},
		{"health insurance", in.HealthInsurance},
		{"retirement contribution", in.RetirementContribution},
		{"other deductions", in.OtherDeductions},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidAmount, a.name)
		}
	}

	if !in.HourlyRate.IsPositive() {
		return fmt.Errorf("%w: hourly rate must be positive", ErrInvalidAmount)
	}
	if in.OvertimeHours.IsPositive() && !in.OvertimeRate.IsPositive() {
		return fmt.Errorf("%w: overtime rate must be positive when overtime hours are paid", ErrInvalidAmount)
	}
	return nil
}

// Paycheck is a fully itemized pay computation. Values are exact; use Rounded for cents.
type Paycheck struct {
	PaycheckInput

	RegularPay        decimal.Decimal
	OvertimePay       decimal.Decimal
	GrossPay          decimal.Decimal
	FederalTax        decimal.Decimal
	StateTax          decimal.Decimal
	SocialSecurityTax decimal.Decimal
	MedicareTax       decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
}

// CalculatePaycheck derives gross pay, withholdings, deductions and net pay from hours and rates.
// No intermediate rounding is applied.
func CalculatePaycheck(in PaycheckInput) (Paycheck, error) {
	if err := in.validate(); err != nil {
		return Paycheck{}, err
	}

	p := Paycheck{PaycheckInput: in}
	p.RegularPay = in.RegularHours.Mul(in.HourlyRate)
	p.OvertimePay = in.OvertimeHours.Mul(in.OvertimeRate)
	p.GrossPay = p.RegularPay.Add(p.OvertimePay)

	p.FederalTax = p.GrossPay.Mul(FederalTaxRate)
	p.StateTax = p.GrossPay.Mul(StateTaxRate)
	p.SocialSecurityTax = p.GrossPay.Mul(SocialSecurityTaxRate)
	p.MedicareTax = p.GrossPay.Mul(MedicareTaxRate)

	p.TotalDeductions = p.Withholdings().
		Add(in.HealthInsurance).
		Add(in.RetirementContribution).
		Add(in.OtherDeductions)
	p.NetPay = p.GrossPay.Sub(p.TotalDeductions)

	return p, nil
}

// Withholdings is the sum of the four statutory taxes.
func (p Paycheck) Withholdings() decimal.Decimal {
	return p.FederalTax.Add(p.StateTax).Add(p.SocialSecurityTax).Add(p.MedicareTax)
}

// Rounded returns the paycheck with money rounded half-up to cents.
// Net pay is derived from the rounded gross and total so the two still reconcile.
func (p Paycheck) Rounded() Paycheck {
	r := p
	r.RegularPay = p.RegularPay.Round(MoneyPlaces)
	r.OvertimePay = p.OvertimePay.Round(MoneyPlaces)
	r.GrossPay = p.GrossPay.Round(MoneyPlaces)
	r.FederalTax = p.FederalTax.Round(MoneyPlaces)
	r.StateTax = p.StateTax.Round(MoneyPlaces)
	r.SocialSecurityTax = p.SocialSecurityTax.Round(MoneyPlaces)
	r.MedicareTax = p.MedicareTax.Round(MoneyPlaces)
	r.HealthInsurance = p.HealthInsurance.Round(MoneyPlaces)
	r.RetirementContribution = p.RetirementContribution.Round(MoneyPlaces)
	r.OtherDeductions = p.OtherDeductions.Round(MoneyPlaces)
	r.TotalDeductions = p.TotalDeductions.Round(MoneyPlaces)
	r.NetPay = r.GrossPay.Sub(r.TotalDeductions)
	return r
}
