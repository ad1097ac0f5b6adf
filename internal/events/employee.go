package events

type EmployeeEvent struct {
	Meta
	EmployeeID     int64  `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Status         string `json:"status"`
}

type AssignmentEvent struct {
	Meta
	EmployeeID int64  `json:"employee_id"`
	TargetID   int64  `json:"target_id"`
	StartDate  string `json:"start_date"`
}
