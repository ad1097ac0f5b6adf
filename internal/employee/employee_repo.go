package employee

import (
	"context"
	"time"

	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	// The Exists* checks ignore the row with excludeID (0 for none).
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsBySSN(ctx context.Context, ssn string, excludeID int64) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	UpsertAddress(ctx context.Context, addr *Address) error
	UpdateStatus(ctx context.Context, id int64, status string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("id = ?", id).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	var employees []Employee
	db := r.db.WithContext(ctx).Scopes(scope.Status(filter.Status))
	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		db = db.Where(
			"first_name LIKE ? OR last_name LIKE ? OR CONCAT(first_name, ' ', last_name) LIKE ? OR employee_number LIKE ? OR email LIKE ?",
			like, like, like, like, like,
		)
	}
	err := db.Order("last_name ASC, first_name ASC").Find(&employees).Error
	return employees, err
}

func (r *repository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Employee{}).Where(column+" = ?", value)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	return r.exists(ctx, "employee_number", number, excludeID)
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *repository) ExistsBySSN(ctx context.Context, ssn string, excludeID int64) (bool, error) {
	return r.exists(ctx, "ssn", ssn, excludeID)
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	empl.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(empl).
		Select("employee_number", "first_name", "last_name", "email", "ssn", "hire_date", "salary", "updated_at").
		Updates(empl).Error
}

func (r *repository) UpsertAddress(ctx context.Context, addr *Address) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(addr).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
