package company

import (
	"context"
	"log/slog"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{CompanyRepository: companyRepo}
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(companyData), nil
}

// GetPayrollPolicy implements company.CompanyService.
func (c *CompanyServiceImpl) GetPayrollPolicy(ctx context.Context) (company.PayrollPolicyResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return company.PayrollPolicyResponse{}, err
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return company.PayrollPolicyResponse{}, err
	}
	return company.NewPayrollPolicyResponse(companyData.PayrollPolicy), nil
}

// UpdatePayrollPolicy implements company.CompanyService.
// The request is merged over the stored policy and the result validated as a whole.
func (c *CompanyServiceImpl) UpdatePayrollPolicy(ctx context.Context, req company.UpdatePayrollPolicyRequest) (company.PayrollPolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.PayrollPolicyResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return company.PayrollPolicyResponse{}, err
	}
	if !claims.Can(user.PermissionCompanyManage) {
		return company.PayrollPolicyResponse{}, user.ErrOwnerAccessRequired
	}

	companyData, err := c.CompanyRepository.GetByID(ctx, claims.CompanyID)
	if err != nil {
		return company.PayrollPolicyResponse{}, err
	}

	policy := req.Apply(companyData.PayrollPolicy)
	if err := policy.Validate(); err != nil {
		return company.PayrollPolicyResponse{}, err
	}

	updated, err := c.CompanyRepository.UpdatePayrollPolicy(ctx, claims.CompanyID, policy)
	if err != nil {
		return company.PayrollPolicyResponse{}, err
	}

	slog.Info("payroll policy updated",
		"company_id", claims.CompanyID,
		"user_id", claims.UserID,
		"pay_frequency", updated.PayrollPolicy.PayFrequency,
		"auto_process", updated.PayrollPolicy.AutoProcessPayroll,
	)

	return company.NewPayrollPolicyResponse(updated.PayrollPolicy), nil
}
