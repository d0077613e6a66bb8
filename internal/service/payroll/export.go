package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeaders = []string{
	"Employee Code", "Employee", "Status", "Pay Date",
	"Regular Hours", "Overtime Hours", "Hourly Rate", "Overtime Rate",
	"Gross Pay", "Federal Tax", "State Tax", "Social Security", "Medicare",
	"Health Insurance", "Retirement", "Other Deductions", "Total Deductions", "Net Pay",
}

// buildRegister renders one row per record plus a totals row. Money is rounded to cents.
func buildRegister(companyName string, period payroll.Period, records []payroll.PayrollRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})
	totalStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})

	lastCol, _ := excelize.ColumnNumberToName(len(registerHeaders))

	f.SetCellValue(registerSheet, "A1", fmt.Sprintf("%s payroll register %s to %s",
		companyName, period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly)))
	f.MergeCell(registerSheet, "A1", lastCol+"1")
	f.SetCellStyle(registerSheet, "A1", "A1", titleStyle)

	const headerRow = 3
	for i, h := range registerHeaders {
		c, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(registerSheet, c, h)
	}
	f.SetCellStyle(registerSheet, cell("A", headerRow), cell(lastCol, headerRow), headerStyle)
	f.SetColWidth(registerSheet, "A", "A", 14)
	f.SetColWidth(registerSheet, "B", "B", 28)
	f.SetColWidth(registerSheet, "C", lastCol, 14)

	totals := make([]decimal.Decimal, len(registerHeaders))
	row := headerRow + 1
	for _, r := range records {
		p := r.Paycheck().Rounded()
		f.SetCellValue(registerSheet, cell("A", row), deref(r.EmployeeCode))
		f.SetCellValue(registerSheet, cell("B", row), deref(r.EmployeeName))
		f.SetCellValue(registerSheet, cell("C", row), string(r.Status))
		f.SetCellValue(registerSheet, cell("D", row), r.PayDate.Format(time.DateOnly))

		values := []decimal.Decimal{
			p.RegularHours, p.OvertimeHours, p.HourlyRate, p.OvertimeRate,
			p.GrossPay, p.FederalTax, p.StateTax, p.SocialSecurityTax, p.MedicareTax,
			p.HealthInsurance, p.RetirementContribution, p.OtherDeductions, p.TotalDeductions, p.NetPay,
		}
		for i, v := range values {
			col := i + 5
			c, _ := excelize.CoordinatesToCellName(col, row)
			f.SetCellValue(registerSheet, c, v.Round(2).InexactFloat64())
			totals[col-1] = totals[col-1].Add(v.Round(2))
		}
		row++
	}
	f.SetCellStyle(registerSheet, cell("E", headerRow+1), cell(lastCol, row-1), moneyStyle)

	f.SetCellValue(registerSheet, cell("A", row), "Total")
	// rates are not summed
	for col := 5; col <= len(registerHeaders); col++ {
		if col == 7 || col == 8 {
			continue
		}
		c, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(registerSheet, c, totals[col-1].InexactFloat64())
	}
	f.SetCellStyle(registerSheet, cell("A", row), cell(lastCol, row), totalStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
