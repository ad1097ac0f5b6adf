package payroll

import "go-ems/internal/shared/money"

// CreatePayrollRequest records one pay run for an employee. NetPay may be
// omitted, in which case it is gross minus all deductions.
type CreatePayrollRequest struct {
	EmployeeID      int64      `json:"employee_id" binding:"required,gt=0"`
	PayDate         string     `json:"pay_date"`
	PeriodStart     string     `json:"period_start"`
	PeriodEnd       string     `json:"period_end"`
	GrossPay        money.Text `json:"gross_pay"`
	FederalTax      money.Text `json:"federal_tax"`
	StateTax        money.Text `json:"state_tax"`
	OtherDeductions money.Text `json:"other_deductions"`
	NetPay          money.Text `json:"net_pay"`
}

type HistoryFilter struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

type PayrollResponse struct {
	ID              int64  `json:"id"`
	EmployeeID      int64  `json:"employee_id"`
	PayDate         string `json:"pay_date"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	GrossPay        string `json:"gross_pay"`
	FederalTax      string `json:"federal_tax"`
	StateTax        string `json:"state_tax"`
	OtherDeductions string `json:"other_deductions"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
}
