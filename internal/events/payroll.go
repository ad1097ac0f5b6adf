package events

type PayrollRecordedEvent struct {
	Meta
	PayrollID  int64  `json:"payroll_id"`
	EmployeeID int64  `json:"employee_id"`
	PayDate    string `json:"pay_date"`
	GrossPay   string `json:"gross_pay"`
	NetPay     string `json:"net_pay"`
}
