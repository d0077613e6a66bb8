package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	seq     int
	clock   time.Time
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		records: make(map[string]payroll.PayrollRecord),
		clock:   time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakePayrollRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakePayrollRepo) Create(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == r.EmployeeID && existing.PayPeriodStart.Equal(r.PayPeriodStart) && existing.PayPeriodEnd.Equal(r.PayPeriodEnd) {
			return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
		}
	}
	f.seq++
	r.ID = fmt.Sprintf("0190a1b2-7c3d-7e4f-8a5b-%012d", f.seq)
	r.CreatedAt = f.tick()
	r.UpdatedAt = r.CreatedAt
	f.records[r.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time, companyID string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.CompanyID == companyID && r.EmployeeID == employeeID && r.PayPeriodStart.Equal(start) && r.PayPeriodEnd.Equal(end) {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
}

func (f *fakePayrollRepo) List(ctx context.Context, companyID string, filter payroll.Filter) ([]payroll.PayrollRecord, int64, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.sorted() {
		if r.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) ListByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.sorted() {
		if r.CompanyID == companyID && r.PayPeriodStart.Equal(start) && r.PayPeriodEnd.Equal(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	current, ok := f.records[r.ID]
	if !ok || current.CompanyID != r.CompanyID {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
	}
	if !current.UpdatedAt.Equal(r.UpdatedAt) {
		return payroll.PayrollRecord{}, payroll.ErrConcurrentUpdate
	}
	r.UpdatedAt = f.tick()
	f.records[r.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string, companyID string) error {
	if _, err := f.GetByID(ctx, id, companyID); err != nil {
		return err
	}
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) sorted() []payroll.PayrollRecord {
	out := make([]payroll.PayrollRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
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

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) UpdatePayrollPolicy(ctx context.Context, id string, policy company.PayrollPolicy) (company.Company, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	c.PayrollPolicy = policy
	f.companies[id] = c
	return c, nil
}

func (f *fakeCompanyRepo) AdvancePayPeriodEnd(ctx context.Context, id string, from, to time.Time) error {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.PayrollPolicy.PayPeriodEnd == nil || !c.PayrollPolicy.PayPeriodEnd.Equal(from) {
		return company.ErrPolicyUpdateConflict
	}
	c.PayrollPolicy.PayPeriodEnd = &to
	f.companies[id] = c
	return nil
}

func (f *fakeCompanyRepo) ListDueForAutoProcess(ctx context.Context, asOf time.Time) ([]company.Company, error) {
	var out []company.Company
	for _, c := range f.companies {
		if c.PayrollPolicy.IsDue(asOf) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTimesheetRepo struct {
	timesheet.TimesheetRepository
	entries []timesheet.Entry
}

func (f *fakeTimesheetRepo) ListByEmployeeRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	var out []timesheet.Entry
	for _, e := range f.entries {
		if e.CompanyID == companyID && e.EmployeeID == employeeID && !e.WorkDate.Before(from) && !e.WorkDate.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}
