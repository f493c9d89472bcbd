package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialPurchase is a bulk buy of sachet rolls or packing nylon.
type MaterialPurchase struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Type      enum.MaterialType `gorm:"size:32;not null;index" json:"type"`
	Quantity  int               `gorm:"not null" json:"quantity"`
	Cost      decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"cost"`
	Date      period.Date       `gorm:"not null;index" json:"date"`
	Notes     *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (m *MaterialPurchase) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

func (MaterialPurchase) TableName() string {
	return "material_purchases"
}
