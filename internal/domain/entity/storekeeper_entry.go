package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StorekeeperEntry is a warehouse record of physical bag movement. It is
// cross-checked against receptionist sales by people, not by the system.
type StorekeeperEntry struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	Date        period.Date               `gorm:"not null;index" json:"date"`
	EntryType   enum.StorekeeperEntryType `gorm:"size:32;not null;index" json:"entryType"`
	DriverID    *uuid.UUID                `gorm:"type:uuid" json:"driverId,omitempty"`
	DriverName  *string                   `gorm:"size:255" json:"driverName,omitempty"`
	PackerID    *uuid.UUID                `gorm:"type:uuid" json:"packerId,omitempty"`
	PackerName  *string                   `gorm:"size:255" json:"packerName,omitempty"`
	BagsCount   int                       `gorm:"not null" json:"bagsCount"`
	SubmittedBy uuid.UUID                 `gorm:"type:uuid;not null" json:"submittedBy"`
	SubmittedAt *time.Time                `json:"submittedAt,omitempty"`
	IsSubmitted bool                      `gorm:"not null;default:false" json:"isSubmitted"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

func (s *StorekeeperEntry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (StorekeeperEntry) TableName() string {
	return "storekeeper_entries"
}
