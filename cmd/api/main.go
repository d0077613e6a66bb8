package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/config"
	appHTTP "github.com/payrollpro/payroll-backend-go/internal/handler/http"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/cron"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/lock"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/logger"
	"github.com/payrollpro/payroll-backend-go/internal/repository/postgresql"
	companyService "github.com/payrollpro/payroll-backend-go/internal/service/company"
	payrollService "github.com/payrollpro/payroll-backend-go/internal/service/payroll"
	timesheetService "github.com/payrollpro/payroll-backend-go/internal/service/timesheet"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env, cfg.App.Version)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, log); err != nil {
		log.Error("Error running migrations", "error", err)
		os.Exit(1)
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	timesheetSvc := timesheetService.NewTimesheetService(db, timesheetRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, companyRepo, timesheetRepo)
	companySvc := companyService.NewCompanyService(companyRepo)

	var locker lock.Locker = lock.NoopLocker{}
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Error("Error connecting to redis", "error", err)
			os.Exit(1)
		}
		locker = lock.NewRedisLocker(client, instanceToken())
	}

	scheduler := cron.NewScheduler(log)
	if cfg.Payroll.AutoProcessEnabled {
		payrollJobs := cron.NewPayrollJobs(companyRepo, payrollSvc, locker, log, cfg.Payroll.Concurrency)
		payrollJobs.RegisterJobs(scheduler, cfg.Payroll.AutoProcessInterval)
	}
	scheduler.Start()

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)

	router := appHTTP.NewRouter(
		log,
		cfg.App.AllowedOrigins,
		JWTService,
		timesheetHandler,
		payrollHandler,
		companyHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", "error", err)
	}
}

func instanceToken() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
