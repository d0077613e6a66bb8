package company

import "context"

type CompanyService interface {
	GetMyCompany(ctx context.Context) (CompanyResponse, error)
	GetPayrollPolicy(ctx context.Context) (PayrollPolicyResponse, error)
	UpdatePayrollPolicy(ctx context.Context, req UpdatePayrollPolicyRequest) (PayrollPolicyResponse, error)
}
