package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/payrollpro/payroll-backend-go/internal/domain/auth"
	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, err.Error())

	// User permission errors
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrSelfApproval):
		Forbidden(w, err.Error())

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrInvalidTimeRange),
		errors.Is(err, timesheet.ErrInvalidAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrInvalidTransition),
		errors.Is(err, timesheet.ErrEntryNotEditable),
		errors.Is(err, timesheet.ErrEntryNotDeletable),
		errors.Is(err, timesheet.ErrEntryAlreadyExists),
		errors.Is(err, timesheet.ErrConcurrentUpdate),
		errors.Is(err, timesheet.ErrNothingToSubmit):
		Conflict(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidAmount),
		errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrNoRecordsForPeriod):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidTransition),
		errors.Is(err, payroll.ErrRecordNotEditable),
		errors.Is(err, payroll.ErrRecordAlreadyExists),
		errors.Is(err, payroll.ErrConcurrentUpdate):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoPayRate):
		BadRequest(w, err.Error(), nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrInvalidPayFrequency):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, company.ErrPolicyUpdateConflict):
		Conflict(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
