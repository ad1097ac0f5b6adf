package report

type HiringQuery struct {
	Start  string `form:"start"`
	End    string `form:"end"`
	Format string `form:"format"`
}

type MonthQuery struct {
	Month  string `form:"month"`
	Format string `form:"format"`
}

type HiringRow struct {
	EmployeeID     int64  `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HireDate       string `json:"hire_date"`
	Status         string `json:"status"`
	Division       string `json:"division"`
	JobTitle       string `json:"job_title"`
}

type HiringReport struct {
	Start string      `json:"start"`
	End   string      `json:"end"`
	Rows  []HiringRow `json:"rows"`
}

type MonthlyPayRow struct {
	Group     string `json:"group"`
	Employees int64  `json:"employees"`
	GrossPay  string `json:"gross_pay"`
	NetPay    string `json:"net_pay"`
}

type MonthlyPayReport struct {
	Month      string          `json:"month"`
	GroupBy    GroupBy         `json:"group_by"`
	Rows       []MonthlyPayRow `json:"rows"`
	TotalGross string          `json:"total_gross"`
	TotalNet   string          `json:"total_net"`
}
