package salary

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslipPDF renders one salary record as a payslip. The net line is
// computed here, the same as every other read path.
func RenderPayslipPDF(record SalaryRecord) ([]byte, error) {
	view := record.View()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", record.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", record.CreatedAt.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic pay: %.2f", record.BasicPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: HRA %.2f, DA %.2f, travel %.2f", record.Allowances.HRA, record.Allowances.DA, record.Allowances.Travel))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: PF %.2f, tax %.2f, loans %.2f", record.Deductions.PF, record.Deductions.Tax, record.Deductions.Loans))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.2f", view.NetSalary))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
