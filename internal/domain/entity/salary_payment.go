package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryPayment is an actual disbursement. Its amounts are entered by hand
// and need not match the projected salary.
type SalaryPayment struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"employeeId"`
	EmployeeName     string              `gorm:"size:255;not null" json:"employeeName"`
	FixedAmount      decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"fixedAmount"`
	CommissionAmount decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"commissionAmount"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"totalAmount"`
	Period           enum.SalaryPeriod   `gorm:"size:20;not null" json:"period"`
	PeriodStart      period.Date         `gorm:"not null" json:"periodStart"`
	PeriodEnd        period.Date         `gorm:"not null" json:"periodEnd"`
	PaidDate         period.Date         `gorm:"not null;index" json:"paidDate"`
	Notes            *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func (p *SalaryPayment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (SalaryPayment) TableName() string {
	return "salary_payments"
}
