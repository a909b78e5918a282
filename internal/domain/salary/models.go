package salary

import "time"

type Allowances struct {
	HRA    float64 `json:"hra"`
	DA     float64 `json:"da"`
	Travel float64 `json:"travel"`
}

type Deductions struct {
	PF    float64 `json:"pf"`
	Tax   float64 `json:"tax"`
	Loans float64 `json:"loans"`
}

type SalaryRecord struct {
	ID           string     `json:"id"`
	EmployeeName string     `json:"employeeName"`
	BasicPay     float64    `json:"basicPay"`
	Allowances   Allowances `json:"allowances"`
	Deductions   Deductions `json:"deductions"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SalaryView is a record with its derived net salary appended. The net is
// recomputed on every read and never written back.
type SalaryView struct {
	SalaryRecord
	NetSalary float64 `json:"netSalary"`
}
