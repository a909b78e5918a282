package salary

// Net computes basic pay plus allowances minus deductions. Inputs are
// assumed to share one currency unit; no rounding is applied.
func Net(basicPay float64, allowances Allowances, deductions Deductions) float64 {
	gross := basicPay + allowances.HRA + allowances.DA + allowances.Travel
	withheld := deductions.PF + deductions.Tax + deductions.Loans
	return gross - withheld
}

func (r SalaryRecord) View() SalaryView {
	return SalaryView{
		SalaryRecord: r,
		NetSalary:    Net(r.BasicPay, r.Allowances, r.Deductions),
	}
}
