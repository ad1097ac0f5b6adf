package assignment

import (
	"context"
	"fmt"
	"time"

	"go-ems/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Current(ctx context.Context, kind Kind, employeeID int64) (*Assignment, error)
	History(ctx context.Context, kind Kind, employeeID int64) ([]Assignment, error)
	Create(ctx context.Context, kind Kind, a Assignment) error
	Close(ctx context.Context, kind Kind, a Assignment, endDate time.Time) error
	EmployeeStatus(ctx context.Context, employeeID int64) (string, error)
	TargetExists(ctx context.Context, kind Kind, id int64) (bool, error)
	// CountReferences reports how many history rows point at a division or
	// job title.
	CountReferences(ctx context.Context, kind Kind, id int64) (int64, error)
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

func spec(kind Kind) (kindSpec, error) {
	s, ok := specs[kind]
	if !ok {
		return kindSpec{}, fmt.Errorf("unknown assignment kind %q", kind)
	}
	return s, nil
}

func (r *repository) base(ctx context.Context, s kindSpec, employeeID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(s.table+" a").
		Select("a.employee_id, a."+s.column+" AS target_id, t."+s.lookupColumn+" AS target_name, a.start_date, a.end_date, a.is_current").
		Joins("JOIN "+s.lookupTable+" t ON t.id = a."+s.column).
		Where("a.employee_id = ?", employeeID)
}

// Current returns nil when the employee has no current row.
func (r *repository) Current(ctx context.Context, kind Kind, employeeID int64) (*Assignment, error) {
	s, err := spec(kind)
	if err != nil {
		return nil, err
	}

	var rows []Assignment
	err = r.base(ctx, s, employeeID).
		Scopes(scope.Current("a")).
		Order("a.start_date DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (r *repository) History(ctx context.Context, kind Kind, employeeID int64) ([]Assignment, error) {
	s, err := spec(kind)
	if err != nil {
		return nil, err
	}

	var rows []Assignment
	err = r.base(ctx, s, employeeID).
		Order("a.start_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, kind Kind, a Assignment) error {
	s, err := spec(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Table(s.table).Create(map[string]any{
		"employee_id": a.EmployeeID,
		s.column:      a.TargetID,
		"start_date":  a.StartDate,
		"end_date":    a.EndDate,
		"is_current":  a.IsCurrent,
	}).Error
}

func (r *repository) Close(ctx context.Context, kind Kind, a Assignment, endDate time.Time) error {
	s, err := spec(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Table(s.table).
		Where("employee_id = ? AND "+s.column+" = ? AND start_date = ?", a.EmployeeID, a.TargetID, a.StartDate).
		Updates(map[string]any{
			"end_date":   endDate,
			"is_current": false,
		}).Error
}

// EmployeeStatus returns "" when the employee does not exist.
func (r *repository) EmployeeStatus(ctx context.Context, employeeID int64) (string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Limit(1).
		Pluck("status", &statuses).Error
	if err != nil || len(statuses) == 0 {
		return "", err
	}
	return statuses[0], nil
}

func (r *repository) TargetExists(ctx context.Context, kind Kind, id int64) (bool, error) {
	s, err := spec(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Table(s.lookupTable).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountReferences(ctx context.Context, kind Kind, id int64) (int64, error) {
	s, err := spec(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Table(s.table).Where(s.column+" = ?", id).Count(&count).Error
	return count, err
}
