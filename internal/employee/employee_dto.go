package employee

import "go-ems/internal/shared/money"

type AddressRequest struct {
	Street      string `json:"street"`
	CityID      *int64 `json:"city_id"`
	StateID     *int64 `json:"state_id"`
	Zip         string `json:"zip"`
	Gender      string `json:"gender"`
	Race        string `json:"race"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
}

type CreateEmployeeRequest struct {
	EmployeeNumber string          `json:"employee_number"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	SSN            string          `json:"ssn"`
	HireDate       string          `json:"hire_date"`
	Salary         money.Text      `json:"salary"`
	Address        *AddressRequest `json:"address"`
	// Optional initial assignments, both starting at the hire date.
	DivisionID *int64 `json:"division_id"`
	JobTitleID *int64 `json:"job_title_id"`
}

type UpdateEmployeeRequest struct {
	EmployeeNumber string          `json:"employee_number"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	SSN            string          `json:"ssn"`
	HireDate       string          `json:"hire_date"`
	Salary         money.Text      `json:"salary"`
	Address        *AddressRequest `json:"address"`
}

type ListFilter struct {
	Q      string `form:"q"`
	Status string `form:"status"`
}

type AddressResponse struct {
	Street      string  `json:"street"`
	CityID      *int64  `json:"city_id"`
	StateID     *int64  `json:"state_id"`
	Zip         string  `json:"zip"`
	Gender      string  `json:"gender"`
	Race        string  `json:"race"`
	DateOfBirth *string `json:"date_of_birth"`
	Phone       string  `json:"phone"`
}

type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID             int64            `json:"id"`
	EmployeeNumber string           `json:"employee_number"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	SSN            string           `json:"ssn"`
	HireDate       string           `json:"hire_date"`
	Salary         string           `json:"salary"`
	Status         string           `json:"status"`
	Address        *AddressResponse `json:"address,omitempty"`
	Division       *RefResponse     `json:"division,omitempty"`
	JobTitle       *RefResponse     `json:"job_title,omitempty"`
	CreatedAt      string           `json:"created_at,omitempty"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}
