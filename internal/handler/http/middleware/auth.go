package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/auth"
	"github.com/payrollpro/payroll-backend-go/internal/handler/http/response"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token that names a company and user.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if _, err := jwt.ClaimsFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
