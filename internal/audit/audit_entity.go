package audit

import "time"

type AuditLog struct {
	ID         int64 `gorm:"primaryKey"`
	UserID     *int64
	Action     string
	EntityType string
	EntityID   string
	Details    string
	RequestID  string
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_log"
}
