package events

type SalaryAdjustedEvent struct {
	Meta
	MinSalary        string            `json:"min_salary"`
	MaxSalary        string            `json:"max_salary"`
	Percentage       string            `json:"percentage"`
	EmployeesUpdated int               `json:"employees_updated"`
	TotalBefore      string            `json:"total_before"`
	TotalAfter       string            `json:"total_after"`
	Changes          []SalaryChangeRow `json:"changes"`
}

type SalaryChangeRow struct {
	EmployeeID int64  `json:"employee_id"`
	OldSalary  string `json:"old_salary"`
	NewSalary  string `json:"new_salary"`
}
