package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db            database.Transactor
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	companyRepo   company.CompanyRepository
	timesheetRepo timesheet.TimesheetRepository
	now           func() time.Time
}

func NewPayrollService(
	db database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	timesheetRepo timesheet.TimesheetRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:            db,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		companyRepo:   companyRepo,
		timesheetRepo: timesheetRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// rates resolves hourly and overtime rates, falling back to the employee's pay rate and the
// company's overtime multiplier.
func rates(emp *employee.Employee, policy company.PayrollPolicy, hourly, overtime *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var hourlyRate decimal.Decimal
	switch {
	case hourly != nil:
		hourlyRate = *hourly
	case emp != nil:
		rate, err := emp.PayRate()
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		hourlyRate = rate
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: hourly rate is required", payroll.ErrInvalidAmount)
	}

	if overtime != nil {
		return hourlyRate, *overtime, nil
	}
	return hourlyRate, policy.OvertimeRateFor(hourlyRate), nil
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

func canAccess(claims jwt.Claims, employeeID string) bool {
	return claims.Can(user.PermissionPayrollViewAll) || (claims.HasEmployee() && employeeID == claims.EmployeeID)
}

func (s *PayrollServiceImpl) loadRecord(ctx context.Context, claims jwt.Claims, id string) (payroll.PayrollRecord, error) {
	record, err := s.payrollRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if !canAccess(claims, record.EmployeeID) {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

// approvedHours totals the employee's approved timesheet hours inside period.
func (s *PayrollServiceImpl) approvedHours(ctx context.Context, companyID, employeeID string, period payroll.Period) (timesheet.HourSplit, error) {
	entries, err := s.timesheetRepo.ListByEmployeeRange(ctx, companyID, employeeID, period.Start, period.End)
	if err != nil {
		return timesheet.HourSplit{}, err
	}
	return timesheet.SumHours(entries, timesheet.StatusApproved), nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) CalculatePaycheck(ctx context.Context, req payroll.CalculatePaycheckRequest) (payroll.PaycheckResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaycheckResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PaycheckResponse{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return payroll.PaycheckResponse{}, err
	}

	var emp *employee.Employee
	if req.EmployeeID != nil {
		if !canAccess(claims, *req.EmployeeID) {
			return payroll.PaycheckResponse{}, user.ErrInsufficientPermissions
		}
		found, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID, claims.CompanyID)
		if err != nil {
			return payroll.PaycheckResponse{}, err
		}
		emp = &found
	}

	hourly, overtime, err := rates(emp, comp.PayrollPolicy, req.HourlyRate, req.OvertimeRate)
	if err != nil {
		return payroll.PaycheckResponse{}, err
	}

	paycheck, err := payroll.CalculatePaycheck(payroll.PaycheckInput{
		RegularHours:           req.RegularHours,
		OvertimeHours:          req.OvertimeHours,
		HourlyRate:             hourly,
		OvertimeRate:           overtime,
		HealthInsurance:        valueOr(req.HealthInsurance, decimal.Zero),
		RetirementContribution: valueOr(req.RetirementContribution, decimal.Zero),
		OtherDeductions:        valueOr(req.OtherDeductions, decimal.Zero),
	})
	if err != nil {
		return payroll.PaycheckResponse{}, err
	}

	return payroll.NewPaycheckResponse(paycheck), nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	start, _ := time.Parse(time.DateOnly, req.PayPeriodStart)
	end, _ := time.Parse(time.DateOnly, req.PayPeriodEnd)
	period, err := payroll.NewPeriod(start, end)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	payDate := period.End
	if req.PayDate != nil {
		payDate, _ = time.Parse(time.DateOnly, *req.PayDate)
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	comp, err := s.companyRepo.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	regular, overtime := req.RegularHours, req.OvertimeHours
	if regular == nil || overtime == nil {
		approved, err := s.approvedHours(ctx, claims.CompanyID, emp.ID, period)
		if err != nil {
			return payroll.PayrollRecordResponse{}, err
		}
		if regular == nil {
			regular = &approved.Regular
		}
		if overtime == nil {
			overtime = &approved.Overtime
		}
	}

	hourly, overtimeRate, err := rates(&emp, comp.PayrollPolicy, req.HourlyRate, req.OvertimeRate)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := payroll.NewPayrollRecord(claims.CompanyID, emp.ID, period, payDate, payroll.PaycheckInput{
		RegularHours:           *regular,
		OvertimeHours:          *overtime,
		HourlyRate:             hourly,
		OvertimeRate:           overtimeRate,
		HealthInsurance:        valueOr(req.HealthInsurance, decimal.Zero),
		RetirementContribution: valueOr(req.RetirementContribution, decimal.Zero),
		OtherDeductions:        valueOr(req.OtherDeductions, decimal.Zero),
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record.Notes = req.Notes

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(created), nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, claims, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, req payroll.ListPayrollRecordsRequest) (payroll.ListPayrollRecordsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ListPayrollRecordsResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordsResponse{}, err
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	filter := payroll.Filter{EmployeeID: req.EmployeeID, Page: req.Page, Limit: req.Limit}
	if !claims.Can(user.PermissionPayrollViewAll) {
		if !claims.HasEmployee() {
			return payroll.ListPayrollRecordsResponse{}, user.ErrInsufficientPermissions
		}
		own := claims.EmployeeID
		filter.EmployeeID = &own
	}
	if req.Status != nil {
		status := payroll.Status(*req.Status)
		filter.Status = &status
	}
	filter.PeriodStart, _ = validator.ParseOptionalDate(req.PeriodStart)
	filter.PeriodEnd, _ = validator.ParseOptionalDate(req.PeriodEnd)

	records, total, err := s.payrollRepo.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordsResponse{}, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewPayrollRecordResponse(r))
	}

	return payroll.ListPayrollRecordsResponse{
		Records:    responses,
		TotalCount: total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
	}, nil
}

func (s *PayrollServiceImpl) UpdateBenefits(ctx context.Context, req payroll.UpdateBenefitsRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, claims, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	updated, err := payroll.UpdateBenefits(record,
		valueOr(req.HealthInsurance, record.HealthInsurance),
		valueOr(req.RetirementContribution, record.RetirementContribution),
		valueOr(req.OtherDeductions, record.OtherDeductions),
	)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	saved, err := s.payrollRepo.Update(ctx, updated)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(saved), nil
}

func (s *PayrollServiceImpl) ProcessRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.Process)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	return s.transition(ctx, id, payroll.MarkPaid)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, next func(payroll.PayrollRecord, time.Time) (payroll.PayrollRecord, error)) (payroll.PayrollRecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, claims, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	moved, err := next(record, s.now())
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	saved, err := s.payrollRepo.Update(ctx, moved)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(saved), nil
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.loadRecord(ctx, claims, id)
	if err != nil {
		return err
	}
	if !record.IsEditable() {
		return fmt.Errorf("%w: record is %s", payroll.ErrRecordNotEditable, record.Status)
	}

	return s.payrollRepo.Delete(ctx, record.ID, claims.CompanyID)
}

// ========== EXPORT ==========

func (s *PayrollServiceImpl) ExportRegister(ctx context.Context, req payroll.ExportRegisterRequest) (*bytes.Buffer, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	start, _ := time.Parse(time.DateOnly, req.PeriodStart)
	end, _ := time.Parse(time.DateOnly, req.PeriodEnd)
	period, err := payroll.NewPeriod(start, end)
	if err != nil {
		return nil, "", err
	}

	comp, err := s.companyRepo.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return nil, "", err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, claims.CompanyID, period.Start, period.End)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", payroll.ErrNoRecordsForPeriod
	}

	buf, err := buildRegister(comp.Name, period, records)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", payroll.ErrExportGenerationFailed, err)
	}

	return buf, fmt.Sprintf("payroll_register_%s.xlsx", period), nil
}

// ========== AUTO PROCESS ==========

// AutoProcessCompany creates processed records for the company's due pay period and moves the
// policy to the next period. Employees that already have a record, have no pay rate or have
// no approved hours are skipped. Everything happens in one transaction.
func (s *PayrollServiceImpl) AutoProcessCompany(ctx context.Context, companyID string, now time.Time) (payroll.AutoProcessResult, error) {
	result := payroll.AutoProcessResult{CompanyID: companyID}

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		comp, err := s.companyRepo.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		policy := comp.PayrollPolicy
		if !policy.IsDue(now) {
			return nil
		}

		start, end, err := policy.PeriodEnding(*policy.PayPeriodEnd)
		if err != nil {
			return err
		}
		period, err := payroll.NewPeriod(start, end)
		if err != nil {
			return err
		}
		result.Period = period

		employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return err
		}

		for i := range employees {
			created, err := s.autoProcessEmployee(ctx, policy, &employees[i], period, now)
			if err != nil {
				return fmt.Errorf("employee %s: %w", employees[i].ID, err)
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}

		next, err := policy.NextPeriodEnd(period.End)
		if err != nil {
			return err
		}
		return s.companyRepo.AdvancePayPeriodEnd(ctx, companyID, period.End, next)
	})
	if err != nil {
		return payroll.AutoProcessResult{CompanyID: companyID}, err
	}

	return result, nil
}

func (s *PayrollServiceImpl) autoProcessEmployee(ctx context.Context, policy company.PayrollPolicy, emp *employee.Employee, period payroll.Period, now time.Time) (bool, error) {
	_, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, period.Start, period.End, emp.CompanyID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, payroll.ErrRecordNotFound) {
		return false, err
	}

	hourly, overtimeRate, err := rates(emp, policy, nil, nil)
	if errors.Is(err, employee.ErrNoPayRate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	hours, err := s.approvedHours(ctx, emp.CompanyID, emp.ID, period)
	if err != nil {
		return false, err
	}
	if hours.Total().IsZero() {
		return false, nil
	}

	record, err := payroll.NewPayrollRecord(emp.CompanyID, emp.ID, period, period.End, payroll.PaycheckInput{
		RegularHours:           hours.Regular,
		OvertimeHours:          hours.Overtime,
		HourlyRate:             hourly,
		OvertimeRate:           overtimeRate,
		HealthInsurance:        decimal.Zero,
		RetirementContribution: decimal.Zero,
		OtherDeductions:        decimal.Zero,
	})
	if err != nil {
		return false, err
	}
	record, err = payroll.Process(record, now)
	if err != nil {
		return false, err
	}

	if _, err := s.payrollRepo.Create(ctx, record); err != nil {
		return false, err
	}
	return true, nil
}
