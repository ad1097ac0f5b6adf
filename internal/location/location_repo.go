package location

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	FindStates(ctx context.Context) ([]State, error)
	FindStateByID(ctx context.Context, id int64) (*State, error)
	ExistsStateCode(ctx context.Context, code string) (bool, error)
	CreateState(ctx context.Context, s *State) error
	FindCitiesByState(ctx context.Context, stateID int64) ([]City, error)
	ExistsCity(ctx context.Context, stateID int64, name string) (bool, error)
	CreateCity(ctx context.Context, c *City) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindStates(ctx context.Context) ([]State, error) {
	var states []State
	err := r.db.WithContext(ctx).Order("name ASC").Find(&states).Error
	return states, err
}

func (r *repository) FindStateByID(ctx context.Context, id int64) (*State, error) {
	var s State
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ExistsStateCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&State{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateState(ctx context.Context, s *State) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindCitiesByState(ctx context.Context, stateID int64) ([]City, error) {
	var cities []City
	err := r.db.WithContext(ctx).
		Where("state_id = ?", stateID).
		Order("name ASC").
		Find(&cities).Error
	return cities, err
}

func (r *repository) ExistsCity(ctx context.Context, stateID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&City{}).
		Where("state_id = ? AND name = ?", stateID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateCity(ctx context.Context, c *City) error {
	return r.db.WithContext(ctx).Create(c).Error
}
