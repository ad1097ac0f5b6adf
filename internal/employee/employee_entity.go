package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             int64 `gorm:"primaryKey"`
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	SSN            string          `gorm:"column:ssn"`
	HireDate       time.Time       `gorm:"type:date"`
	Salary         decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Address *Address `gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Address is 1:1 with Employee and keyed by the employee id.
type Address struct {
	EmployeeID  int64 `gorm:"primaryKey;autoIncrement:false"`
	Street      string
	CityID      *int64
	StateID     *int64
	Zip         string
	Gender      string
	Race        string
	DateOfBirth *time.Time `gorm:"type:date"`
	Phone       string
}

func (Address) TableName() string {
	return "address"
}
