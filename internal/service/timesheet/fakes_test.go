package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTimesheetRepo struct {
	entries map[string]timesheet.Entry
	seq     int
	clock   time.Time
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{
		entries: make(map[string]timesheet.Entry),
		clock:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTimesheetRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeTimesheetRepo) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	for _, e := range f.entries {
		if e.EmployeeID == entry.EmployeeID && e.WorkDate.Equal(entry.WorkDate) {
			return timesheet.Entry{}, timesheet.ErrEntryAlreadyExists
		}
	}
	f.seq++
	entry.ID = fmt.Sprintf("0190a1b2-7c3d-7e4f-8a5b-%012d", f.seq)
	entry.CreatedAt = f.tick()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeTimesheetRepo) GetByID(ctx context.Context, id string, companyID string) (timesheet.Entry, error) {
	e, ok := f.entries[id]
	if !ok || e.CompanyID != companyID {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeTimesheetRepo) Update(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	current, ok := f.entries[entry.ID]
	if !ok || current.CompanyID != entry.CompanyID {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	if !current.UpdatedAt.Equal(entry.UpdatedAt) {
		return timesheet.Entry{}, timesheet.ErrConcurrentUpdate
	}
	entry.UpdatedAt = f.tick()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeTimesheetRepo) Delete(ctx context.Context, id string, companyID string) error {
	if _, err := f.GetByID(ctx, id, companyID); err != nil {
		return err
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeTimesheetRepo) List(ctx context.Context, companyID string, filter timesheet.Filter) ([]timesheet.Entry, int64, error) {
	var out []timesheet.Entry
	for _, e := range f.sorted() {
		if e.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && e.WorkDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.WorkDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimesheetRepo) ListByEmployeeRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	var out []timesheet.Entry
	for _, e := range f.sorted() {
		if e.CompanyID == companyID && e.EmployeeID == employeeID && !e.WorkDate.Before(from) && !e.WorkDate.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimesheetRepo) sorted() []timesheet.Entry {
	out := make([]timesheet.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate.Before(out[j].WorkDate) })
	return out
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}
