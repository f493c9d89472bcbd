package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/pagination"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReceptionistSaleFilter struct {
	Range     period.Range
	DriverID  *uuid.UUID
	Submitted *bool
}

type ReceptionistSaleRepository interface {
	Create(ctx context.Context, sale *entity.ReceptionistSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceptionistSale, error)
	Update(ctx context.Context, sale *entity.ReceptionistSale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ReceptionistSaleFilter) ([]entity.ReceptionistSale, error)
}

type StorekeeperEntryFilter struct {
	Range     period.Range
	EntryType enum.StorekeeperEntryType
	Submitted *bool
}

type StorekeeperEntryRepository interface {
	Create(ctx context.Context, entry *entity.StorekeeperEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StorekeeperEntry, error)
	Update(ctx context.Context, entry *entity.StorekeeperEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter StorekeeperEntryFilter) ([]entity.StorekeeperEntry, error)
}

type SettlementFilter struct {
	Range   period.Range
	Settled *bool
}

type SettlementRepository interface {
	Create(ctx context.Context, settlement *entity.Settlement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)
	GetByReceptionistSaleID(ctx context.Context, saleID uuid.UUID) (*entity.Settlement, error)
	Update(ctx context.Context, settlement *entity.Settlement) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SettlementFilter) ([]entity.Settlement, error)
}

type SettlementPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SettlementPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SettlementPayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySettlement(ctx context.Context, settlementID uuid.UUID) ([]entity.SettlementPayment, error)
	SumBySettlement(ctx context.Context, settlementID uuid.UUID) (decimal.Decimal, error)
	// List ranges over the paid date.
	List(ctx context.Context, r period.Range) ([]entity.SettlementPayment, error)
}

type AuditLogFilter struct {
	EntityType string
	EntityID   *uuid.UUID
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, params *pagination.Params) ([]entity.AuditLog, int64, error)
}
