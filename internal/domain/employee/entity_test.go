package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_PayRate(t *testing.T) {
	hourly := decimal.RequireFromString("31.25")
	salary := decimal.NewFromInt(52000)

	rate, err := Employee{HourlyRate: &hourly, AnnualSalary: &salary}.PayRate()
	require.NoError(t, err)
	assert.Equal(t, "31.25", rate.String())

	rate, err = Employee{AnnualSalary: &salary}.PayRate()
	require.NoError(t, err)
	assert.Equal(t, "25", rate.String())

	odd := decimal.NewFromInt(50000)
	rate, err = Employee{AnnualSalary: &odd}.PayRate()
	require.NoError(t, err)
	assert.Equal(t, "24.04", rate.String())

	_, err = Employee{}.PayRate()
	assert.ErrorIs(t, err, ErrNoPayRate)
}
