package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/handler/http/middleware"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, timesheetHandler TimesheetHandler, payrollHandler PayrollHandler, companyHandler CompanyHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	viewTimesheets := middleware.RequireAnyPermission(user.PermissionTimesheetViewOwn, user.PermissionTimesheetViewAll)
	viewPayroll := middleware.RequireAnyPermission(user.PermissionPayrollViewOwn, user.PermissionPayrollViewAll)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/timesheets", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimesheetCreate)).Post("/", timesheetHandler.CreateEntry)
				r.With(viewTimesheets).Get("/", timesheetHandler.ListEntries)
				r.Post("/split", timesheetHandler.PreviewSplit)

				r.Route("/weekly", func(r chi.Router) {
					r.With(viewTimesheets).Get("/", timesheetHandler.GetWeek)
					r.With(middleware.RequirePermission(user.PermissionTimesheetCreate)).Put("/", timesheetHandler.SaveWeek)
					r.With(middleware.RequirePermission(user.PermissionTimesheetEdit)).Post("/submit", timesheetHandler.SubmitWeek)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.With(viewTimesheets).Get("/", timesheetHandler.GetEntry)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTimesheetEdit))
						r.Put("/", timesheetHandler.UpdateEntry)
						r.Delete("/", timesheetHandler.DeleteEntry)
						r.Post("/submit", timesheetHandler.SubmitEntry)
					})

					// Manager or owner
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTimesheetApprove))
						r.Post("/approve", timesheetHandler.ApproveEntry)
						r.Post("/reject", timesheetHandler.RejectEntry)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(viewPayroll).Post("/calculate", payrollHandler.CalculatePaycheck)

				r.Route("/records", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollCreate)).Post("/", payrollHandler.CreateRecord)
					r.With(viewPayroll).Get("/", payrollHandler.ListRecords)
					r.With(middleware.RequirePermission(user.PermissionReportsPayroll)).Get("/export", payrollHandler.ExportRegister)

					r.Route("/{id}", func(r chi.Router) {
						r.With(viewPayroll).Get("/", payrollHandler.GetRecord)
						r.With(middleware.RequirePermission(user.PermissionPayrollEdit)).Put("/benefits", payrollHandler.UpdateBenefits)
						r.With(middleware.RequirePermission(user.PermissionPayrollDelete)).Delete("/", payrollHandler.DeleteRecord)

						// Owner only
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionPayrollProcess))
							r.Post("/process", payrollHandler.ProcessRecord)
							r.Post("/pay", payrollHandler.MarkPaid)
						})
					})
				})
			})

			r.Route("/companies/my", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCompanyView))
				r.Get("/", companyHandler.GetMyCompany)
				r.Get("/payroll-policy", companyHandler.GetPayrollPolicy)
				r.With(middleware.RequirePermission(user.PermissionCompanyManage)).Put("/payroll-policy", companyHandler.UpdatePayrollPolicy)
			})
		})
	})

	return r
}
