package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/lock"
	"golang.org/x/sync/errgroup"
)

const (
	autoProcessJobName = "auto_process_payroll"
	autoProcessLockKey = "payroll:auto_process"
)

type PayrollJobs struct {
	companyRepo    company.CompanyRepository
	payrollService payroll.PayrollService
	locker         lock.Locker
	logger         *slog.Logger
	concurrency    int
	lockTTL        time.Duration
	now            func() time.Time
}

func NewPayrollJobs(
	companyRepo company.CompanyRepository,
	payrollService payroll.PayrollService,
	locker lock.Locker,
	logger *slog.Logger,
	concurrency int,
) *PayrollJobs {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PayrollJobs{
		companyRepo:    companyRepo,
		payrollService: payrollService,
		locker:         locker,
		logger:         logger,
		concurrency:    concurrency,
		lockTTL:        10 * time.Minute,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(autoProcessJobName, interval, j.AutoProcessPayroll)
}

// AutoProcessPayroll processes every company whose pay period has ended. Only one instance
// runs a tick at a time; companies are processed concurrently and independently.
func (j *PayrollJobs) AutoProcessPayroll(ctx context.Context) error {
	release, ok, err := j.locker.TryLock(ctx, autoProcessLockKey, j.lockTTL)
	if err != nil {
		return err
	}
	if !ok {
		j.logger.Debug("Cron: auto process payroll already running elsewhere")
		return nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			j.logger.Warn("Cron: failed to release payroll lock", "error", err)
		}
	}()

	now := j.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	companies, err := j.companyRepo.ListDueForAutoProcess(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list companies due for payroll: %w", err)
	}
	if len(companies) == 0 {
		j.logger.Debug("Cron: no companies due for payroll")
		return nil
	}

	j.logger.Info("Cron: starting auto process payroll", "companies", len(companies))

	var created, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)

	for _, c := range companies {
		g.Go(func() error {
			result, err := j.payrollService.AutoProcessCompany(gctx, c.ID, now)
			if err != nil {
				failed.Add(1)
				j.logger.Error("Cron: auto process payroll failed", "company_id", c.ID, "error", err)
				return nil
			}
			created.Add(int64(result.Created))
			j.logger.Info("Cron: payroll processed",
				"company_id", c.ID,
				"period", result.Period.String(),
				"created", result.Created,
				"skipped", result.Skipped,
			)
			return nil
		})
	}
	_ = g.Wait()

	j.logger.Info("Cron: auto process payroll finished",
		"companies", len(companies),
		"records_created", created.Load(),
		"failed", failed.Load(),
	)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("auto process payroll failed for %d of %d companies", n, len(companies))
	}
	return nil
}
