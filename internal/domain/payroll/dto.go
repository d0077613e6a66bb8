package payroll

import (
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	maxRegularHours  = decimal.NewFromInt(168)
	maxOvertimeHours = decimal.NewFromInt(100)
	minHourlyRate    = decimal.RequireFromString("0.01")
	maxHourlyRate    = decimal.RequireFromString("999.99")
	maxBenefitAmount = decimal.RequireFromString("9999.99")
)

const maxNotesLength = 500

// ========== CALCULATION DTOs ==========

type CalculatePaycheckRequest struct {
	EmployeeID             *string          `json:"employee_id,omitempty"`
	RegularHours           decimal.Decimal  `json:"regular_hours"`
	OvertimeHours          decimal.Decimal  `json:"overtime_hours"`
	HourlyRate             *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeRate           *decimal.Decimal `json:"overtime_rate,omitempty"`
	HealthInsurance        *decimal.Decimal `json:"health_insurance,omitempty"`
	RetirementContribution *decimal.Decimal `json:"retirement_contribution,omitempty"`
	OtherDeductions        *decimal.Decimal `json:"other_deductions,omitempty"`
}

func (r *CalculatePaycheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.HourlyRate == nil && r.EmployeeID == nil {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required when employee_id is not provided"})
	}
	hours := r.RegularHours
	overtime := r.OvertimeHours
	errs = append(errs, validateInputs(&hours, &overtime, r.HourlyRate, r.OvertimeRate,
		r.HealthInsurance, r.RetirementContribution, r.OtherDeductions)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaycheckResponse struct {
	RegularHours           decimal.Decimal `json:"regular_hours"`
	OvertimeHours          decimal.Decimal `json:"overtime_hours"`
	HourlyRate             decimal.Decimal `json:"hourly_rate"`
	OvertimeRate           decimal.Decimal `json:"overtime_rate"`
	RegularPay             decimal.Decimal `json:"regular_pay"`
	OvertimePay            decimal.Decimal `json:"overtime_pay"`
	GrossPay               decimal.Decimal `json:"gross_pay"`
	FederalTax             decimal.Decimal `json:"federal_tax"`
	StateTax               decimal.Decimal `json:"state_tax"`
	SocialSecurityTax      decimal.Decimal `json:"social_security_tax"`
	MedicareTax            decimal.Decimal `json:"medicare_tax"`
	HealthInsurance        decimal.Decimal `json:"health_insurance"`
	RetirementContribution decimal.Decimal `json:"retirement_contribution"`
	OtherDeductions        decimal.Decimal `json:"other_deductions"`
	TotalDeductions        decimal.Decimal `json:"total_deductions"`
	NetPay                 decimal.Decimal `json:"net_pay"`
}

// NewPaycheckResponse rounds p to cents.
func NewPaycheckResponse(p Paycheck) PaycheckResponse {
	r := p.Rounded()
	return PaycheckResponse{
		RegularHours:           r.RegularHours,
		OvertimeHours:          r.OvertimeHours,
		HourlyRate:             r.HourlyRate,
		OvertimeRate:           r.OvertimeRate,
		RegularPay:             r.RegularPay,
		OvertimePay:            r.OvertimePay,
		GrossPay:               r.GrossPay,
		FederalTax:             r.FederalTax,
		StateTax:               r.StateTax,
		SocialSecurityTax:      r.SocialSecurityTax,
		MedicareTax:            r.MedicareTax,
		HealthInsurance:        r.HealthInsurance,
		RetirementContribution: r.RetirementContribution,
		OtherDeductions:        r.OtherDeductions,
		TotalDeductions:        r.TotalDeductions,
		NetPay:                 r.NetPay,
	}
}

// ========== RECORD DTOs ==========

type CreatePayrollRecordRequest struct {
	EmployeeID             string           `json:"employee_id"`
	PayPeriodStart         string           `json:"pay_period_start"`
	PayPeriodEnd           string           `json:"pay_period_end"`
	PayDate                *string          `json:"pay_date,omitempty"`
	RegularHours           *decimal.Decimal `json:"regular_hours,omitempty"`
	OvertimeHours          *decimal.Decimal `json:"overtime_hours,omitempty"`
	HourlyRate             *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeRate           *decimal.Decimal `json:"overtime_rate,omitempty"`
	HealthInsurance        *decimal.Decimal `json:"health_insurance,omitempty"`
	RetirementContribution *decimal.Decimal `json:"retirement_contribution,omitempty"`
	OtherDeductions        *decimal.Decimal `json:"other_deductions,omitempty"`
	Notes                  *string          `json:"notes,omitempty"`
}

func (r *CreatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	start, startOK := validator.IsValidDate(r.PayPeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "pay_period_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PayPeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must not be before pay_period_start"})
	}
	if r.PayDate != nil {
		if _, ok := validator.IsValidDate(*r.PayDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	errs = append(errs, validateInputs(r.RegularHours, r.OvertimeHours, r.HourlyRate, r.OvertimeRate,
		r.HealthInsurance, r.RetirementContribution, r.OtherDeductions)...)
	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBenefitsRequest struct {
	ID                     string           `json:"-"`
	HealthInsurance        *decimal.Decimal `json:"health_insurance,omitempty"`
	RetirementContribution *decimal.Decimal `json:"retirement_contribution,omitempty"`
	OtherDeductions        *decimal.Decimal `json:"other_deductions,omitempty"`
	Notes                  *string          `json:"notes,omitempty"`
}

func (r *UpdateBenefitsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	errs = append(errs, validateInputs(nil, nil, nil, nil,
		r.HealthInsurance, r.RetirementContribution, r.OtherDeductions)...)
	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPayrollRecordsRequest struct {
	EmployeeID  *string
	Status      *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

func (r *ListPayrollRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, processed, paid"})
	}
	if r.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.PeriodEnd != nil {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be positive"})
	}
	if r.Limit < 0 || r.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter is the parsed form of ListPayrollRecordsRequest.
type Filter struct {
	EmployeeID  *string
	Status      *Status
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Page        int
	Limit       int
}

type ExportRegisterRequest struct {
	PeriodStart string
	PeriodEnd   string
}

func (r *ExportRegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name,omitempty"`
	EmployeeCode   *string    `json:"employee_code,omitempty"`
	PayPeriodStart string     `json:"pay_period_start"`
	PayPeriodEnd   string     `json:"pay_period_end"`
	PayDate        string     `json:"pay_date"`
	Status         Status     `json:"status"`
	Notes          *string    `json:"notes,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	PaycheckResponse
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCode:     r.EmployeeCode,
		PayPeriodStart:   r.PayPeriodStart.Format(time.DateOnly),
		PayPeriodEnd:     r.PayPeriodEnd.Format(time.DateOnly),
		PayDate:          r.PayDate.Format(time.DateOnly),
		Status:           r.Status,
		Notes:            r.Notes,
		ProcessedAt:      r.ProcessedAt,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		PaycheckResponse: NewPaycheckResponse(r.Paycheck()),
	}
}

type ListPayrollRecordsResponse struct {
	Records    []PayrollRecordResponse `json:"records"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

// AutoProcessResult summarizes one company's scheduled payroll run.
type AutoProcessResult struct {
	CompanyID string
	Period    Period
	Created   int
	Skipped   int
}

func validateInputs(regular, overtime, hourly, overtimeRate, health, retirement, other *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	check := func(field string, v *decimal.Decimal, min, max decimal.Decimal, msg string) {
		if v != nil && !validator.IsDecimalInRange(*v, min, max) {
			errs = append(errs, validator.ValidationError{Field: field, Message: msg})
		}
	}
	check("regular_hours", regular, decimal.Zero, maxRegularHours, "must be between 0 and 168")
	check("overtime_hours", overtime, decimal.Zero, maxOvertimeHours, "must be between 0 and 100")
	check("hourly_rate", hourly, minHourlyRate, maxHourlyRate, "must be between 0.01 and 999.99")
	check("health_insurance", health, decimal.Zero, maxBenefitAmount, "must be between 0 and 9999.99")
	check("retirement_contribution", retirement, decimal.Zero, maxBenefitAmount, "must be between 0 and 9999.99")

	if overtimeRate != nil && overtimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}
	if other != nil && other.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}

	return errs
}
