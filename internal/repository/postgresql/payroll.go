package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	pr.id, pr.company_id, pr.employee_id, pr.pay_period_start, pr.pay_period_end, pr.pay_date,
	pr.regular_hours, pr.overtime_hours, pr.hourly_rate, pr.overtime_rate,
	pr.health_insurance, pr.retirement_contribution, pr.other_deductions,
	pr.gross_pay, pr.federal_tax, pr.state_tax, pr.social_security_tax, pr.medicare_tax,
	pr.total_deductions, pr.net_pay,
	pr.status, pr.notes, pr.processed_at, pr.paid_at, pr.created_at, pr.updated_at,
	e.full_name, e.employee_code`

const payrollFrom = `
	FROM payroll_records pr
	JOIN employees e ON pr.employee_id = e.id`

func scanPayrollRecord(row rowScanner) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	var status string
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.PayPeriodStart, &r.PayPeriodEnd, &r.PayDate,
		&r.RegularHours, &r.OvertimeHours, &r.HourlyRate, &r.OvertimeRate,
		&r.HealthInsurance, &r.RetirementContribution, &r.OtherDeductions,
		&r.GrossPay, &r.FederalTax, &r.StateTax, &r.SocialSecurityTax, &r.MedicareTax,
		&r.TotalDeductions, &r.NetPay,
		&status, &r.Notes, &r.ProcessedAt, &r.PaidAt, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	r.Status = payroll.Status(status)
	return r, nil
}

func (p *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	if record.ID == "" {
		id, err := newID()
		if err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll record id: %w", err)
		}
		record.ID = id
	}

	query := `
		INSERT INTO payroll_records (
			id, company_id, employee_id, pay_period_start, pay_period_end, pay_date,
			regular_hours, overtime_hours, hourly_rate, overtime_rate,
			health_insurance, retirement_contribution, other_deductions,
			gross_pay, federal_tax, state_tax, social_security_tax, medicare_tax,
			total_deductions, net_pay, status, notes, processed_at, paid_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING id
	`
	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.EmployeeID, record.PayPeriodStart, record.PayPeriodEnd, record.PayDate,
		record.RegularHours, record.OvertimeHours, record.HourlyRate, record.OvertimeRate,
		record.HealthInsurance, record.RetirementContribution, record.OtherDeductions,
		record.GrossPay, record.FederalTax, record.StateTax, record.SocialSecurityTax, record.MedicareTax,
		record.TotalDeductions, record.NetPay, string(record.Status), record.Notes, record.ProcessedAt, record.PaidAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return p.GetByID(ctx, id, record.CompanyID)
}

func (p *payrollRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := "SELECT" + payrollColumns + payrollFrom + `
		WHERE pr.id = $1 AND pr.company_id = $2
	`
	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

func (p *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := "SELECT" + payrollColumns + payrollFrom + `
		WHERE pr.employee_id = $1 AND pr.pay_period_start = $2 AND pr.pay_period_end = $3 AND pr.company_id = $4
	`
	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, start, end, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record for period: %w", err)
	}
	return record, nil
}

func (p *payrollRepositoryImpl) List(ctx context.Context, companyID string, filter payroll.Filter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, p.db)

	where := " WHERE pr.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.PeriodStart != nil {
		where += fmt.Sprintf(" AND pr.pay_period_start >= $%d", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		where += fmt.Sprintf(" AND pr.pay_period_end <= $%d", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+payrollFrom+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	_, limit, offset := pageBounds(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT%s%s%s ORDER BY pr.pay_period_end DESC, e.full_name ASC LIMIT $%d OFFSET $%d",
		payrollColumns, payrollFrom, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	records, err := p.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return records, totalCount, nil
}

func (p *payrollRepositoryImpl) ListByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := "SELECT" + payrollColumns + payrollFrom + `
		WHERE pr.company_id = $1 AND pr.pay_period_start = $2 AND pr.pay_period_end = $3
		ORDER BY e.employee_code ASC
	`
	records, err := p.query(ctx, q, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records for period: %w", err)
	}
	return records, nil
}

func (p *payrollRepositoryImpl) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records SET
			regular_hours = $1, overtime_hours = $2, hourly_rate = $3, overtime_rate = $4,
			health_insurance = $5, retirement_contribution = $6, other_deductions = $7,
			gross_pay = $8, federal_tax = $9, state_tax = $10, social_security_tax = $11,
			medicare_tax = $12, total_deductions = $13, net_pay = $14,
			status = $15, notes = $16, processed_at = $17, paid_at = $18, pay_date = $19,
			updated_at = NOW()
		WHERE id = $20 AND company_id = $21 AND updated_at = $22
	`
	tag, err := q.Exec(ctx, query,
		record.RegularHours, record.OvertimeHours, record.HourlyRate, record.OvertimeRate,
		record.HealthInsurance, record.RetirementContribution, record.OtherDeductions,
		record.GrossPay, record.FederalTax, record.StateTax, record.SocialSecurityTax,
		record.MedicareTax, record.TotalDeductions, record.NetPay,
		string(record.Status), record.Notes, record.ProcessedAt, record.PaidAt, record.PayDate,
		record.ID, record.CompanyID, record.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := p.GetByID(ctx, record.ID, record.CompanyID); getErr != nil {
			return payroll.PayrollRecord{}, getErr
		}
		return payroll.PayrollRecord{}, payroll.ErrConcurrentUpdate
	}

	return p.GetByID(ctx, record.ID, record.CompanyID)
}

func (p *payrollRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

func (p *payrollRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.PayrollRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
