package salary

import "go-ems/internal/shared/money"

// AdjustmentRequest keeps the amounts as raw text so a missing or malformed
// bound is reported per field.
type AdjustmentRequest struct {
	MinSalary  money.Text `json:"min_salary"`
	MaxSalary  money.Text `json:"max_salary"`
	Percentage money.Text `json:"percentage"`
}

type AdjustmentLine struct {
	EmployeeID     int64  `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	OldSalary      string `json:"old_salary"`
	NewSalary      string `json:"new_salary"`
}

type AdjustmentResult struct {
	EmployeesUpdated int              `json:"employees_updated"`
	TotalBefore      string           `json:"total_before"`
	TotalAfter       string           `json:"total_after"`
	TotalIncrease    string           `json:"total_increase"`
	Percentage       string           `json:"percentage"`
	Applied          bool             `json:"applied"`
	Lines            []AdjustmentLine `json:"lines"`
}
