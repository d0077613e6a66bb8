package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/auth"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
)

const (
	ClaimUserID     = "user_id"
	ClaimCompanyID  = "company_id"
	ClaimEmployeeID = "employee_id"
	ClaimRole       = "role"
	ClaimType       = "type"

	TokenTypeAccess = "access"
)

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID     string
	CompanyID  string
	EmployeeID string
	Role       user.Role
}

func (c Claims) HasEmployee() bool {
	return c.EmployeeID != ""
}

func (c Claims) Can(p user.Permission) bool {
	return user.HasPermission(c.Role, p)
}

// ClaimsFromContext reads the verified token claims placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if token == nil {
		return Claims{}, auth.ErrInvalidToken
	}

	companyID, ok := claims[ClaimCompanyID].(string)
	if !ok || companyID == "" {
		return Claims{}, fmt.Errorf("%w: %s", auth.ErrMissingClaim, ClaimCompanyID)
	}
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("%w: %s", auth.ErrMissingClaim, ClaimUserID)
	}

	role, _ := claims[ClaimRole].(string)
	employeeID, _ := claims[ClaimEmployeeID].(string)

	return Claims{
		UserID:     userID,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}
