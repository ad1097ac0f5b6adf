package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupBy selects which assignment history a monthly report groups on.
type GroupBy string

const (
	ByDivision GroupBy = "division"
	ByJobTitle GroupBy = "job_title"

	// UnassignedGroup collects pay for employees with no assignment active
	// on the pay date.
	UnassignedGroup = "Unassigned"
)

type HiringRecord struct {
	EmployeeID     int64
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	HireDate       time.Time
	Status         string
	Division       *string
	JobTitle       *string
}

type PayGroup struct {
	GroupName string
	Employees int64
	GrossPay  decimal.Decimal
	NetPay    decimal.Decimal
}
