package salary

import "github.com/shopspring/decimal"

// Candidate is the slice of an employees row the adjustment reads and writes.
type Candidate struct {
	ID             int64
	EmployeeNumber string
	FirstName      string
	LastName       string
	Salary         decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (Candidate) TableName() string {
	return "employees"
}

func (c Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}
