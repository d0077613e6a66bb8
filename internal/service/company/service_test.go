package company

import (
	"context"
	"testing"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/company"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt/jwttest"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0001"

type fakeCompanyRepo struct {
	company.CompanyRepository
	companies map[string]company.Company
	updates   int
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
	f.updates++
	c.PayrollPolicy = policy
	f.companies[id] = c
	return c, nil
}

func setup(t *testing.T) (company.CompanyService, *fakeCompanyRepo, context.Context, context.Context) {
	repo := &fakeCompanyRepo{companies: map[string]company.Company{
		companyID: {ID: companyID, Name: "Acme Corp", Username: "acme", PayrollPolicy: company.DefaultPayrollPolicy()},
	}}

	owner := jwttest.Context(t, context.Background(), jwt.Claims{
		UserID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0b01", CompanyID: companyID, Role: user.RoleOwner,
	})
	manager := jwttest.Context(t, context.Background(), jwt.Claims{
		UserID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0b02", CompanyID: companyID, Role: user.RoleManager,
	})
	return NewCompanyService(repo), repo, owner, manager
}

func TestGetMyCompany(t *testing.T) {
	svc, _, owner, _ := setup(t)

	resp, err := svc.GetMyCompany(owner)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", resp.Name)
	assert.Equal(t, company.PayFrequencyMonthly, resp.PayrollPolicy.PayFrequency)
	assert.Equal(t, 40, resp.PayrollPolicy.StandardWorkHours)
	assert.True(t, resp.PayrollPolicy.OvertimeMultiplier.Equal(decimal.RequireFromString("1.5")))
	assert.Nil(t, resp.PayrollPolicy.PayPeriodEnd)

	orphan := jwttest.Context(t, context.Background(), jwt.Claims{
		UserID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0b03", CompanyID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0fff", Role: user.RoleOwner,
	})
	_, err = svc.GetPayrollPolicy(orphan)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestUpdatePayrollPolicy(t *testing.T) {
	svc, repo, owner, manager := setup(t)

	frequency := "biweekly"
	multiplier := decimal.RequireFromString("2")
	auto := true
	end := "2024-03-15"

	resp, err := svc.UpdatePayrollPolicy(owner, company.UpdatePayrollPolicyRequest{
		PayFrequency:       &frequency,
		OvertimeMultiplier: &multiplier,
		AutoProcessPayroll: &auto,
		PayPeriodEnd:       &end,
	})
	require.NoError(t, err)
	assert.Equal(t, company.PayFrequencyBiweekly, resp.PayFrequency)
	assert.True(t, resp.AutoProcessPayroll)
	require.NotNil(t, resp.PayPeriodEnd)
	assert.Equal(t, "2024-03-15", *resp.PayPeriodEnd)

	stored := repo.companies[companyID].PayrollPolicy
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *stored.PayPeriodEnd)
	assert.Equal(t, 40, stored.StandardWorkHours, "fields not in the request are kept")

	_, err = svc.UpdatePayrollPolicy(manager, company.UpdatePayrollPolicyRequest{PayFrequency: &frequency})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdatePayrollPolicy_Invalid(t *testing.T) {
	svc, repo, owner, _ := setup(t)

	tooLow := decimal.RequireFromString("0.5")
	_, err := svc.UpdatePayrollPolicy(owner, company.UpdatePayrollPolicyRequest{OvertimeMultiplier: &tooLow})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "overtime_multiplier")

	auto := true
	_, err = svc.UpdatePayrollPolicy(owner, company.UpdatePayrollPolicyRequest{AutoProcessPayroll: &auto})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "pay_period_end")

	frequency := "daily"
	_, err = svc.UpdatePayrollPolicy(owner, company.UpdatePayrollPolicyRequest{PayFrequency: &frequency})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "pay_frequency")

	assert.Zero(t, repo.updates)
}
