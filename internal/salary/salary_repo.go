package salary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const statusActive = "ACTIVE"

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveInRange(ctx context.Context, min, max decimal.Decimal, forUpdate bool) ([]Candidate, error)
	UpdateSalary(ctx context.Context, employeeID int64, salary decimal.Decimal, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindActiveInRange selects ACTIVE employees with min <= salary <= max.
// forUpdate row-locks the selection until the surrounding transaction ends.
func (r *repository) FindActiveInRange(ctx context.Context, min, max decimal.Decimal, forUpdate bool) ([]Candidate, error) {
	db := r.db.WithContext(ctx).
		Where("status = ? AND salary BETWEEN ? AND ?", statusActive, min, max).
		Order("id ASC")
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []Candidate
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateSalary(ctx context.Context, employeeID int64, salary decimal.Decimal, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Candidate{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"salary":     salary,
			"updated_at": at,
		}).Error
}
