package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Settings holds the unit economics of the plant. SalesPrice1 and SalesPrice2
// are the legacy two-tier prices, superseded by the bag price list.
type Settings struct {
	ID                         int             `gorm:"primaryKey;autoIncrement:false" json:"-"`
	SachetRollCost             decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"sachetRollCost"`
	SachetRollBagsPerRoll      int             `gorm:"not null" json:"sachetRollBagsPerRoll"`
	PackingNylonCost           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"packingNylonCost"`
	PackingNylonBagsPerPackage int             `gorm:"not null" json:"packingNylonBagsPerPackage"`
	SalesPrice1                decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"salesPrice1"`
	SalesPrice2                decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"salesPrice2"`
	InventoryLowThreshold      int             `gorm:"not null" json:"inventoryLowThreshold"`
	UpdatedAt                  time.Time       `json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings is used whenever the settings row is absent.
func DefaultSettings() *Settings {
	return &Settings{
		ID:                         SettingsID,
		SachetRollCost:             decimal.NewFromInt(31000),
		SachetRollBagsPerRoll:      450,
		PackingNylonCost:           decimal.NewFromInt(100000),
		PackingNylonBagsPerPackage: 10000,
		SalesPrice1:                decimal.NewFromInt(250),
		SalesPrice2:                decimal.NewFromInt(230),
		InventoryLowThreshold:      4000,
	}
}

// SachetCostPerBag is the roll cost spread over its yield, rounded to cents.
func (s *Settings) SachetCostPerBag() decimal.Decimal {
	return perBag(s.SachetRollCost, s.SachetRollBagsPerRoll)
}

// NylonCostPerBag is the package cost spread over its yield, rounded to cents.
func (s *Settings) NylonCostPerBag() decimal.Decimal {
	return perBag(s.PackingNylonCost, s.PackingNylonBagsPerPackage)
}

// MaterialCostPerBag is the allocated material cost of one finished bag.
func (s *Settings) MaterialCostPerBag() decimal.Decimal {
	return s.SachetCostPerBag().Add(s.NylonCostPerBag())
}

func perBag(cost decimal.Decimal, yield int) decimal.Decimal {
	if yield < 1 {
		return decimal.Zero
	}
	return cost.Div(decimal.NewFromInt(int64(yield))).Round(2)
}
