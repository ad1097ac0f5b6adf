package audit

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindAll(ctx context.Context, q Query) ([]AuditLog, error)
}

// Query is a parsed ListFilter.
type Query struct {
	EntityType string
	EntityID   string
	Action     string
	From       *time.Time
	To         *time.Time
	Limit      int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, q Query) ([]AuditLog, error) {
	db := r.db.WithContext(ctx).Model(&AuditLog{})
	if q.EntityType != "" {
		db = db.Where("entity_type = ?", q.EntityType)
	}
	if q.EntityID != "" {
		db = db.Where("entity_id = ?", q.EntityID)
	}
	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", q.To.AddDate(0, 0, 1))
	}

	var logs []AuditLog
	err := db.Order("created_at DESC").Order("id DESC").Limit(q.Limit).Find(&logs).Error
	return logs, err
}
