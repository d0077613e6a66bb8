package payroll

import "errors"

var (
	ErrInvalidAmount          = errors.New("invalid payroll amount")
	ErrInvalidTransition      = errors.New("invalid payroll status transition")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrRecordNotFound         = errors.New("payroll record not found")
	ErrRecordAlreadyExists    = errors.New("payroll record already exists for this employee and period")
	ErrRecordNotEditable      = errors.New("payroll record can only be changed while in draft")
	ErrConcurrentUpdate       = errors.New("payroll record was modified by another request")
	ErrNoRecordsForPeriod     = errors.New("no payroll records found for this period")
	ErrExportGenerationFailed = errors.New("failed to generate payroll register")
)
