package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnualWorkHours converts an annual salary to an hourly rate (52 weeks of 40 hours).
var AnnualWorkHours = decimal.NewFromInt(2080)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type Employee struct {
	ID               string
	CompanyID        string
	UserID           *string
	EmployeeCode     string
	FullName         string
	HourlyRate       *decimal.Decimal
	AnnualSalary     *decimal.Decimal
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}

// PayRate returns the explicit hourly rate, or the annual salary spread over AnnualWorkHours
// rounded to cents.
func (e Employee) PayRate() (decimal.Decimal, error) {
	if e.HourlyRate != nil && e.HourlyRate.IsPositive() {
		return *e.HourlyRate, nil
	}
	if e.AnnualSalary != nil && e.AnnualSalary.IsPositive() {
		return e.AnnualSalary.DivRound(AnnualWorkHours, 2), nil
	}
	return decimal.Zero, ErrNoPayRate
}
