package division

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=division_repo.go -destination=mock/division_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, d *Division) error
	FindAll(ctx context.Context) ([]Division, error)
	FindByID(ctx context.Context, id int64) (*Division, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, d *Division) error
	Delete(ctx context.Context, id int64) error
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

func (r *repository) Create(ctx context.Context, d *Division) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Division, error) {
	var divisions []Division
	err := r.db.WithContext(ctx).Order("name ASC").Find(&divisions).Error
	return divisions, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Division, error) {
	var d Division
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Division{}).Where("name = ?", name)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, d *Division) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Division{}).Error
}
