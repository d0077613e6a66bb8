package company

import (
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CompanyResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"company_name"`
	Username      string                `json:"company_username"`
	Address       *string               `json:"company_address,omitempty"`
	PayrollPolicy PayrollPolicyResponse `json:"payroll_policy"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		Username:      c.Username,
		Address:       c.Address,
		PayrollPolicy: NewPayrollPolicyResponse(c.PayrollPolicy),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type PayrollPolicyResponse struct {
	PayFrequency       PayFrequency    `json:"pay_frequency"`
	StandardWorkHours  int             `json:"standard_work_hours"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	AutoProcessPayroll bool            `json:"auto_process_payroll"`
	PayPeriodEnd       *string         `json:"pay_period_end,omitempty"`
}

func NewPayrollPolicyResponse(p PayrollPolicy) PayrollPolicyResponse {
	resp := PayrollPolicyResponse{
		PayFrequency:       p.PayFrequency,
		StandardWorkHours:  p.StandardWorkHours,
		OvertimeMultiplier: p.OvertimeMultiplier,
		AutoProcessPayroll: p.AutoProcessPayroll,
	}
	if p.PayPeriodEnd != nil {
		end := p.PayPeriodEnd.Format(time.DateOnly)
		resp.PayPeriodEnd = &end
	}
	return resp
}

type UpdatePayrollPolicyRequest struct {
	PayFrequency       *string          `json:"pay_frequency,omitempty"`
	StandardWorkHours  *int             `json:"standard_work_hours,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	AutoProcessPayroll *bool            `json:"auto_process_payroll,omitempty"`
	PayPeriodEnd       *string          `json:"pay_period_end,omitempty"`
}

// Validate checks field formats; cross-field rules are enforced by PayrollPolicy.Validate.
func (r *UpdatePayrollPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayFrequency != nil && !PayFrequency(*r.PayFrequency).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "pay_frequency", Message: "must be one of weekly, biweekly, semimonthly, monthly"})
	}
	if r.PayPeriodEnd != nil && *r.PayPeriodEnd != "" {
		if _, ok := validator.IsValidDate(*r.PayPeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overlays the request on p. An empty pay_period_end clears it.
func (r *UpdatePayrollPolicyRequest) Apply(p PayrollPolicy) PayrollPolicy {
	if r.PayFrequency != nil {
		p.PayFrequency = PayFrequency(*r.PayFrequency)
	}
	if r.StandardWorkHours != nil {
		p.StandardWorkHours = *r.StandardWorkHours
	}
	if r.OvertimeMultiplier != nil {
		p.OvertimeMultiplier = *r.OvertimeMultiplier
	}
	if r.AutoProcessPayroll != nil {
		p.AutoProcessPayroll = *r.AutoProcessPayroll
	}
	if r.PayPeriodEnd != nil {
		if *r.PayPeriodEnd == "" {
			p.PayPeriodEnd = nil
		} else if end, ok := validator.IsValidDate(*r.PayPeriodEnd); ok {
			p.PayPeriodEnd = &end
		}
	}
	return p
}
