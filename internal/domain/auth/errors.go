package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrMissingClaim     = errors.New("required token claim is missing")
	ErrEmployeeRequired = errors.New("this action requires an employee account")
)
