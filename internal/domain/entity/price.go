package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Price lists share one shape and live in separate tables.
const (
	BagPriceTable      = "bag_prices"
	MaterialPriceTable = "material_prices"
)

// Price is one entry of a bag or material price list. Several entries may be
// active at once.
type Price struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Value     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"value"`
	Label     string          `gorm:"size:255;not null" json:"label"`
	SortOrder int             `gorm:"not null;default:0;index" json:"sortOrder"`
	IsActive  bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p *Price) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// PriceList names a price table.
type PriceList string

const (
	BagPrices      PriceList = BagPriceTable
	MaterialPrices PriceList = MaterialPriceTable
)

func (l PriceList) IsValid() bool {
	return l == BagPrices || l == MaterialPrices
}
