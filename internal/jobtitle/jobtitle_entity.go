package jobtitle

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobTitle carries a base salary reference value; employee salaries are
// not derived from it.
type JobTitle struct {
	ID          int64           `gorm:"primaryKey"`
	Title       string          `gorm:"size:100;not null"`
	Description string          `gorm:"size:255"`
	BaseSalary  decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (JobTitle) TableName() string {
	return "job_titles"
}
