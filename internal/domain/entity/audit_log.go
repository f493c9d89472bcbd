package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is a write-once record of a change to a business entity.
type AuditLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType string           `gorm:"size:64;not null;index:idx_audit_entity" json:"entityType"`
	EntityID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_audit_entity" json:"entityId"`
	Action     enum.AuditAction `gorm:"size:20;not null" json:"action"`
	Field      *string          `gorm:"size:64" json:"field,omitempty"`
	OldValue   *string          `gorm:"type:text" json:"oldValue,omitempty"`
	NewValue   *string          `gorm:"type:text" json:"newValue,omitempty"`
	ChangedBy  uuid.UUID        `gorm:"type:uuid;not null" json:"changedBy"`
	ChangedAt  time.Time        `gorm:"not null;index" json:"changedAt"`
	Reason     *string          `gorm:"type:text" json:"reason,omitempty"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	if a.ChangedAt.IsZero() {
		a.ChangedAt = time.Now().UTC()
	}
	return nil
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
