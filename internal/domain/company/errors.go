package company

import "errors"

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrInvalidPayFrequency  = errors.New("invalid pay frequency")
	ErrPolicyUpdateConflict = errors.New("payroll policy was modified by another request")
)
