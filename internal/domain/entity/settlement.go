package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement tracks cash owed against cash collected for one receptionist
// sale. SettledAmount always equals the sum of its payments.
type Settlement struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Date               period.Date     `gorm:"not null;index" json:"date"`
	ReceptionistSaleID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"receptionistSaleId"`
	ExpectedAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"expectedAmount"`
	SettledAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"settledAmount"`
	RemainingBalance   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"remainingBalance"`
	IsSettled          bool            `gorm:"not null;default:false;index" json:"isSettled"`
	SettledBy          uuid.UUID       `gorm:"type:uuid;not null" json:"settledBy"`
	SettledAt          *time.Time      `json:"settledAt,omitempty"`
	Notes              *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`

	ReceptionistSale *ReceptionistSale   `gorm:"foreignKey:ReceptionistSaleID;constraint:OnDelete:RESTRICT" json:"-"`
	Payments         []SettlementPayment `gorm:"foreignKey:SettlementID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (Settlement) TableName() string {
	return "settlements"
}

// ApplySettled sets SettledAmount and derives the balance and status. The
// balance may go negative on overpayment.
func (s *Settlement) ApplySettled(settled decimal.Decimal, at time.Time) {
	s.SettledAmount = settled
	s.RemainingBalance = s.ExpectedAmount.Sub(settled)
	wasSettled := s.IsSettled
	s.IsSettled = s.RemainingBalance.LessThanOrEqual(decimal.Zero)
	switch {
	case s.IsSettled && !wasSettled:
		s.SettledAt = &at
	case !s.IsSettled:
		s.SettledAt = nil
	}
}

// SettlementPayment is one cash collection against a settlement.
type SettlementPayment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SettlementID uuid.UUID       `gorm:"type:uuid;not null;index" json:"settlementId"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaidBy       uuid.UUID       `gorm:"type:uuid;not null" json:"paidBy"`
	PaidAt       time.Time       `gorm:"not null" json:"paidAt"`
	Notes        *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (p *SettlementPayment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (SettlementPayment) TableName() string {
	return "settlement_payments"
}
