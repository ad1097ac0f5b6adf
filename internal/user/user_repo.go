package user

import (
	"context"

	"go-ems/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context, filter ListFilter) ([]User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmployee(ctx context.Context, employeeID int64) (bool, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, active bool) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]User, error) {
	var users []User
	db := r.db.WithContext(ctx)
	if filter.Q != "" {
		db = db.Where("username LIKE ?", "%"+filter.Q+"%")
	}
	if role, ok := domain.ParseRole(filter.Role); ok {
		db = db.Where("role = ?", string(role))
	}
	err := db.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *repository) count(ctx context.Context, table, column string, value any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(table).Where(column+" = ?", value).Count(&n).Error
	return n > 0, err
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.count(ctx, "users", "username", username)
}

func (r *repository) ExistsByEmployee(ctx context.Context, employeeID int64) (bool, error) {
	return r.count(ctx, "users", "employee_id", employeeID)
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	return r.count(ctx, "employees", "id", employeeID)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", hash).Error
}
