package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackerEntry records bags packed by one packer on one day.
type PackerEntry struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	PackerName  string      `gorm:"size:255;not null" json:"packerName"`
	PackerEmail *string     `gorm:"size:255" json:"packerEmail,omitempty"`
	EmployeeID  *uuid.UUID  `gorm:"type:uuid;index" json:"employeeId,omitempty"`
	BagsPacked  int         `gorm:"not null" json:"bagsPacked"`
	Date        period.Date `gorm:"not null;index" json:"date"`
	Notes       *string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p *PackerEntry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (PackerEntry) TableName() string {
	return "packer_entries"
}
