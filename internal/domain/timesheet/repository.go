package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access for daily entries.
// All lookups are scoped by companyID.
type TimesheetRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string, companyID string) (Entry, error)
	// Update persists entry if its UpdatedAt still matches the stored row.
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string, filter Filter) ([]Entry, int64, error)
	ListByEmployeeRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Entry, error)
}
