package company

import "time"

type Company struct {
	ID            string
	Name          string
	Username      string
	Address       *string
	PayrollPolicy PayrollPolicy
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
