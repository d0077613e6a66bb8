package payroll

import (
	"bytes"
	"context"
	"time"
)

type PayrollService interface {
	CalculatePaycheck(ctx context.Context, req CalculatePaycheckRequest) (PaycheckResponse, error)

	// Records
	CreateRecord(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecordResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, req ListPayrollRecordsRequest) (ListPayrollRecordsResponse, error)
	UpdateBenefits(ctx context.Context, req UpdateBenefitsRequest) (PayrollRecordResponse, error)
	ProcessRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	// ExportRegister renders the period's records as an xlsx workbook and suggests a filename.
	ExportRegister(ctx context.Context, req ExportRegisterRequest) (*bytes.Buffer, string, error)

	// AutoProcessCompany runs the scheduled payroll for a company whose policy is due.
	AutoProcessCompany(ctx context.Context, companyID string, now time.Time) (AutoProcessResult, error)
}
