package jobtitle

import "go-ems/internal/shared/money"

type CreateJobTitleRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=255"`
	BaseSalary  money.Text `json:"base_salary"`
}

type UpdateJobTitleRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=255"`
	BaseSalary  money.Text `json:"base_salary"`
}

type JobTitleResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BaseSalary  string `json:"base_salary"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type OptionResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
