package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a driver, packer or other staff member on the payroll.
// CommissionRate is a flat amount per bag.
type Employee struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string              `gorm:"size:255;not null" json:"name"`
	Email          string              `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone          *string             `gorm:"size:50" json:"phone,omitempty"`
	Role           enum.EmployeeRole   `gorm:"size:50;not null" json:"role"`
	SalaryType     enum.SalaryType     `gorm:"size:20;not null" json:"salaryType"`
	FixedSalary    decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"fixedSalary"`
	CommissionRate decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"commissionRate"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

func (Employee) TableName() string {
	return "employees"
}

// EffectiveCommissionRate is the per-bag rate, or zero when the employee
// does not earn commission.
func (e *Employee) EffectiveCommissionRate() decimal.Decimal {
	if !e.SalaryType.HasCommission() || !e.CommissionRate.Valid {
		return decimal.Zero
	}
	return e.CommissionRate.Decimal
}

// EffectiveFixedSalary is the monthly fixed salary, or zero when not paid one.
func (e *Employee) EffectiveFixedSalary() decimal.Decimal {
	if !e.SalaryType.HasFixed() || !e.FixedSalary.Valid {
		return decimal.Zero
	}
	return e.FixedSalary.Decimal
}
