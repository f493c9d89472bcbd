package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a driver or counter sale of finished bags.
type Sale struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	DriverName        string              `gorm:"size:255;not null" json:"driverName"`
	DriverEmail       *string             `gorm:"size:255" json:"driverEmail,omitempty"`
	EmployeeID        *uuid.UUID          `gorm:"type:uuid;index" json:"employeeId,omitempty"`
	BagsSold          int                 `gorm:"not null" json:"bagsSold"`
	PricePerBag       decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"pricePerBag"`
	TotalAmount       decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"totalAmount"`
	Date              period.Date         `gorm:"not null;index" json:"date"`
	Notes             *string             `gorm:"type:text" json:"notes,omitempty"`
	MaterialPriceRefs JSONList[uuid.UUID] `json:"materialPriceRefs,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (Sale) TableName() string {
	return "sales"
}

// ComputedTotal is bagsSold × pricePerBag.
func (s *Sale) ComputedTotal() decimal.Decimal {
	return s.PricePerBag.Mul(decimal.NewFromInt(int64(s.BagsSold)))
}
