// Package jwttest builds request contexts carrying verified claims for tests.
package jwttest

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
)

const secret = "jwttest-secret"

// Context returns ctx with a token for claims, as jwtauth.Verifier would leave it.
func Context(t *testing.T, ctx context.Context, claims jwt.Claims) context.Context {
	t.Helper()

	payload := map[string]interface{}{
		jwt.ClaimUserID:    claims.UserID,
		jwt.ClaimCompanyID: claims.CompanyID,
		jwt.ClaimRole:      string(claims.Role),
		jwt.ClaimType:      jwt.TokenTypeAccess,
	}
	if claims.EmployeeID != "" {
		payload[jwt.ClaimEmployeeID] = claims.EmployeeID
	}

	token, _, err := jwtauth.New("HS256", []byte(secret), nil).Encode(payload)
	require.NoError(t, err)

	return jwtauth.NewContext(ctx, token, nil)
}
