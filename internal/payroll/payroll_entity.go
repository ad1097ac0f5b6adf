package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one pay record. Rows are appended and never changed.
type Payroll struct {
	ID              int64           `gorm:"primaryKey"`
	EmployeeID      int64           `gorm:"not null;index:idx_payroll_employee_pay_date"`
	PayDate         time.Time       `gorm:"type:date;not null;index:idx_payroll_employee_pay_date"`
	PeriodStart     time.Time       `gorm:"type:date;not null"`
	PeriodEnd       time.Time       `gorm:"type:date;not null"`
	GrossPay        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NetPay          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FederalTax      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StateTax        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time
}

func (Payroll) TableName() string {
	return "payroll"
}

func (p Payroll) TotalDeductions() decimal.Decimal {
	return p.FederalTax.Add(p.StateTax).Add(p.OtherDeductions)
}

// PayeeEmployee is the part of the employee row printed on a statement.
type PayeeEmployee struct {
	ID             int64
	EmployeeNumber string
	FirstName      string
	LastName       string
	Status         string
}

func (PayeeEmployee) TableName() string {
	return "employees"
}

func (e PayeeEmployee) FullName() string {
	return e.FirstName + " " + e.LastName
}
