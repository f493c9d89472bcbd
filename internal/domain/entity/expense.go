package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Type        enum.ExpenseType `gorm:"size:32;not null;index" json:"type"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"amount"`
	Date        period.Date      `gorm:"not null;index" json:"date"`
	Reference   *string          `gorm:"size:255" json:"reference,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}
