package jobtitle

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=jobtitle_repo.go -destination=mock/jobtitle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, jt *JobTitle) error
	FindAll(ctx context.Context) ([]JobTitle, error)
	FindByID(ctx context.Context, id int64) (*JobTitle, error)
	ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error)
	Update(ctx context.Context, jt *JobTitle) error
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

func (r *repository) Create(ctx context.Context, jt *JobTitle) error {
	return r.db.WithContext(ctx).Create(jt).Error
}

func (r *repository) FindAll(ctx context.Context) ([]JobTitle, error) {
	var titles []JobTitle
	err := r.db.WithContext(ctx).Order("title ASC").Find(&titles).Error
	return titles, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*JobTitle, error) {
	var jt JobTitle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&jt).Error; err != nil {
		return nil, err
	}
	return &jt, nil
}

func (r *repository) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&JobTitle{}).Where("title = ?", title)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, jt *JobTitle) error {
	return r.db.WithContext(ctx).Save(jt).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&JobTitle{}).Error
}
