package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	company.CompanyRepository
	due  []company.Company
	asOf time.Time
}

func (f *fakeCompanyRepo) ListDueForAutoProcess(ctx context.Context, asOf time.Time) ([]company.Company, error) {
	f.asOf = asOf
	return f.due, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (f *fakePayrollService) AutoProcessCompany(ctx context.Context, companyID string, now time.Time) (payroll.AutoProcessResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, companyID)
	f.mu.Unlock()

	if companyID == f.failOn {
		return payroll.AutoProcessResult{}, errors.New("database unavailable")
	}
	return payroll.AutoProcessResult{CompanyID: companyID, Created: 2, Skipped: 1}, nil
}

type busyLocker struct{}

func (busyLocker) TryLock(context.Context, string, time.Duration) (lock.ReleaseFunc, bool, error) {
	return nil, false, nil
}

func newJobs(repo *fakeCompanyRepo, svc *fakePayrollService, locker lock.Locker) *PayrollJobs {
	jobs := NewPayrollJobs(repo, svc, locker, discardLogger(), 2)
	jobs.now = func() time.Time { return time.Date(2024, 4, 1, 13, 30, 0, 0, time.UTC) }
	return jobs
}

func TestAutoProcessPayroll_ProcessesEveryDueCompany(t *testing.T) {
	repo := &fakeCompanyRepo{due: []company.Company{{ID: "c-1"}, {ID: "c-2"}, {ID: "c-3"}}}
	svc := &fakePayrollService{}

	err := newJobs(repo, svc, lock.NoopLocker{}).AutoProcessPayroll(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"c-1", "c-2", "c-3"}, svc.calls)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), repo.asOf)
}

func TestAutoProcessPayroll_ContinuesPastFailures(t *testing.T) {
	repo := &fakeCompanyRepo{due: []company.Company{{ID: "c-1"}, {ID: "c-2"}}}
	svc := &fakePayrollService{failOn: "c-1"}

	err := newJobs(repo, svc, lock.NoopLocker{}).AutoProcessPayroll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Len(t, svc.calls, 2)
}

func TestAutoProcessPayroll_SkipsWhenLockHeld(t *testing.T) {
	repo := &fakeCompanyRepo{due: []company.Company{{ID: "c-1"}}}
	svc := &fakePayrollService{}

	err := newJobs(repo, svc, busyLocker{}).AutoProcessPayroll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, svc.calls)
}

func TestPayrollJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(discardLogger())
	newJobs(&fakeCompanyRepo{}, &fakePayrollService{}, lock.NoopLocker{}).RegisterJobs(s, 15*time.Minute)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, autoProcessJobName, jobs[0].Name)
	assert.Equal(t, 15*time.Minute, jobs[0].Interval)
}
