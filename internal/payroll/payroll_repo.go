package payroll

import (
	"context"
	"time"

	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id int64) (*Payroll, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]Payroll, error)
	FindByEmployeeBetween(ctx context.Context, employeeID int64, start, end time.Time) ([]Payroll, error)
	FindEmployee(ctx context.Context, employeeID int64) (*PayeeEmployee, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Scopes(scope.EmployeeID(employeeID)).
		Order("pay_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// FindByEmployeeBetween keeps rows whose pay date lies in [start, end].
func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID int64, start, end time.Time) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Scopes(scope.EmployeeID(employeeID), scope.DateBetween("pay_date", start, end)).
		Order("pay_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID int64) (*PayeeEmployee, error) {
	var e PayeeEmployee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
