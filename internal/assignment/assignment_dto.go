package assignment

type AssignRequest struct {
	TargetID  int64  `json:"id" binding:"required,gt=0"`
	StartDate string `json:"start_date" binding:"required"`
}

type AssignmentResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsCurrent bool    `json:"is_current"`
}

type HistoryResponse struct {
	EmployeeID int64                `json:"employee_id"`
	Divisions  []AssignmentResponse `json:"divisions"`
	JobTitles  []AssignmentResponse `json:"job_titles"`
}
