package http

import (
	"encoding/json"
	"net/http"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	GetPayrollPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePayrollPolicy(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMyCompany implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	result, err := c.companyService.GetMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayrollPolicy implements CompanyHandler.
func (c *CompanyHandlerImpl) GetPayrollPolicy(w http.ResponseWriter, r *http.Request) {
	result, err := c.companyService.GetPayrollPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdatePayrollPolicy implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdatePayrollPolicy(w http.ResponseWriter, r *http.Request) {
	var req company.UpdatePayrollPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := c.companyService.UpdatePayrollPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll policy updated successfully", result)
}
