package company

import (
	"context"
	"time"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	UpdatePayrollPolicy(ctx context.Context, id string, policy PayrollPolicy) (Company, error)
	// AdvancePayPeriodEnd moves the period end forward only if it still equals from.
	AdvancePayPeriodEnd(ctx context.Context, id string, from, to time.Time) error
	ListDueForAutoProcess(ctx context.Context, asOf time.Time) ([]Company, error)
}
