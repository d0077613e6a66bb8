package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll records.
// All methods include companyID to prevent cross-company data access.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time, companyID string) (PayrollRecord, error)
	List(ctx context.Context, companyID string, filter Filter) ([]PayrollRecord, int64, error)
	ListByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]PayrollRecord, error)
	// Update persists record if its UpdatedAt still matches the stored row.
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	Delete(ctx context.Context, id string, companyID string) error
}
