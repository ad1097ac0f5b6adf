package auth

import "time"

// Account is the login view of a users row.
type Account struct {
	ID           int64 `gorm:"primaryKey"`
	Username     string
	PasswordHash string
	Role         string
	EmployeeID   *int64
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "users"
}

type LinkedEmployee struct {
	ID             int64 `gorm:"primaryKey"`
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Status         string
}

func (LinkedEmployee) TableName() string {
	return "employees"
}
