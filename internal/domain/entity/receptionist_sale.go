package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceBreakdownItem is a bucket of bags sold at one bag price.
type PriceBreakdownItem struct {
	PriceID uuid.UUID       `json:"priceId"`
	Amount  decimal.Decimal `json:"amount"`
	Bags    int             `json:"bags"`
}

// ReceptionistSale is the front desk record of bags sold, pending settlement.
type ReceptionistSale struct {
	ID             uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	Date           period.Date                  `gorm:"not null;index" json:"date"`
	DriverID       *uuid.UUID                   `gorm:"type:uuid;index" json:"driverId,omitempty"`
	DriverName     *string                      `gorm:"size:255" json:"driverName,omitempty"`
	SaleType       enum.SaleType                `gorm:"size:20;not null" json:"saleType"`
	BagsAtPrice1   int                          `gorm:"not null;default:0" json:"bagsAtPrice1"`
	BagsAtPrice2   int                          `gorm:"not null;default:0" json:"bagsAtPrice2"`
	TotalBags      int                          `gorm:"not null" json:"totalBags"`
	ExpectedAmount decimal.Decimal              `gorm:"type:decimal(14,2);not null" json:"expectedAmount"`
	PriceBreakdown JSONList[PriceBreakdownItem] `json:"priceBreakdown"`
	SubmittedBy    uuid.UUID                    `gorm:"type:uuid;not null" json:"submittedBy"`
	SubmittedAt    *time.Time                   `json:"submittedAt,omitempty"`
	IsSubmitted    bool                         `gorm:"not null;default:false" json:"isSubmitted"`
	CreatedAt      time.Time                    `json:"createdAt"`
	UpdatedAt      time.Time                    `json:"updatedAt"`
}

func (r *ReceptionistSale) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func (ReceptionistSale) TableName() string {
	return "receptionist_sales"
}

// Recompute derives TotalBags and ExpectedAmount. A price breakdown wins
// over the legacy two-price fields.
func (r *ReceptionistSale) Recompute(salesPrice1, salesPrice2 decimal.Decimal) {
	if len(r.PriceBreakdown) > 0 {
		bags := 0
		amount := decimal.Zero
		for _, item := range r.PriceBreakdown {
			bags += item.Bags
			amount = amount.Add(item.Amount.Mul(decimal.NewFromInt(int64(item.Bags))))
		}
		r.TotalBags = bags
		r.ExpectedAmount = amount
		return
	}

	r.TotalBags = r.BagsAtPrice1 + r.BagsAtPrice2
	r.ExpectedAmount = salesPrice1.Mul(decimal.NewFromInt(int64(r.BagsAtPrice1))).
		Add(salesPrice2.Mul(decimal.NewFromInt(int64(r.BagsAtPrice2))))
}
