package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
)

// Date filters use inclusive calendar ranges. A zero bound is open.

type SaleFilter struct {
	Range      period.Range
	EmployeeID *uuid.UUID
}

type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SaleFilter) ([]entity.Sale, error)
	// SumBagsSold totals bagsSold over the range.
	SumBagsSold(ctx context.Context, r period.Range) (int64, error)
}

type ExpenseFilter struct {
	Range period.Range
	Type  enum.ExpenseType
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	CreateBatch(ctx context.Context, expenses []entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ExpenseFilter) ([]entity.Expense, error)
}

type MaterialPurchaseFilter struct {
	Range period.Range
	Type  enum.MaterialType
}

type MaterialPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.MaterialPurchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MaterialPurchase, error)
	Update(ctx context.Context, purchase *entity.MaterialPurchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MaterialPurchaseFilter) ([]entity.MaterialPurchase, error)
	// SumQuantityByType totals purchased units per material over all time.
	SumQuantityByType(ctx context.Context) (map[enum.MaterialType]int64, error)
}

type PackerEntryFilter struct {
	Range      period.Range
	EmployeeID *uuid.UUID
}

type PackerEntryRepository interface {
	Create(ctx context.Context, entry *entity.PackerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PackerEntry, error)
	Update(ctx context.Context, entry *entity.PackerEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PackerEntryFilter) ([]entity.PackerEntry, error)
}

// SalaryPaymentFilter ranges over the paid date.
type SalaryPaymentFilter struct {
	Range      period.Range
	EmployeeID *uuid.UUID
}

type SalaryPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SalaryPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error)
	Update(ctx context.Context, payment *entity.SalaryPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SalaryPaymentFilter) ([]entity.SalaryPayment, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Employee, error)
}
