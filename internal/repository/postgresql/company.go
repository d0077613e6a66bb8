package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, name, username, address,
	pay_frequency, standard_work_hours, overtime_multiplier, auto_process_payroll, pay_period_end,
	created_at, updated_at`

func scanCompany(row rowScanner) (company.Company, error) {
	var c company.Company
	var frequency string
	err := row.Scan(
		&c.ID, &c.Name, &c.Username, &c.Address,
		&frequency, &c.PayrollPolicy.StandardWorkHours, &c.PayrollPolicy.OvertimeMultiplier,
		&c.PayrollPolicy.AutoProcessPayroll, &c.PayrollPolicy.PayPeriodEnd,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	c.PayrollPolicy.PayFrequency = company.PayFrequency(frequency)
	return c, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := "SELECT" + companyColumns + " FROM companies WHERE id = $1"
	result, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id %s: %w", id, err)
	}
	return result, nil
}

// UpdatePayrollPolicy implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdatePayrollPolicy(ctx context.Context, id string, policy company.PayrollPolicy) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies SET
			pay_frequency = $1, standard_work_hours = $2, overtime_multiplier = $3,
			auto_process_payroll = $4, pay_period_end = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING` + companyColumns
	result, err := scanCompany(q.QueryRow(ctx, query,
		string(policy.PayFrequency), policy.StandardWorkHours, policy.OvertimeMultiplier,
		policy.AutoProcessPayroll, policy.PayPeriodEnd, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to update payroll policy for company %s: %w", id, err)
	}
	return result, nil
}

// AdvancePayPeriodEnd implements company.CompanyRepository.
func (c *companyRepositoryImpl) AdvancePayPeriodEnd(ctx context.Context, id string, from, to time.Time) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `
		UPDATE companies SET pay_period_end = $1, updated_at = NOW()
		WHERE id = $2 AND pay_period_end = $3
	`, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to advance pay period end for company %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrPolicyUpdateConflict
	}
	return nil
}

// ListDueForAutoProcess implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListDueForAutoProcess(ctx context.Context, asOf time.Time) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := "SELECT" + companyColumns + `
		FROM companies
		WHERE auto_process_payroll AND pay_period_end IS NOT NULL AND pay_period_end < $1
		ORDER BY pay_period_end ASC
	`
	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies due for payroll: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		result, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, result)
	}
	return companies, rows.Err()
}
