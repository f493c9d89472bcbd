package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/pagination"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receptionistSaleRepository struct {
	db *gorm.DB
}

// NewReceptionistSaleRepository creates a new receptionist sale repository
func NewReceptionistSaleRepository(db *gorm.DB) domainRepo.ReceptionistSaleRepository {
	return &receptionistSaleRepository{db: db}
}

func (r *receptionistSaleRepository) Create(ctx context.Context, sale *entity.ReceptionistSale) error {
	return translate(conn(ctx, r.db).Create(sale).Error)
}

func (r *receptionistSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceptionistSale, error) {
	return first[entity.ReceptionistSale](conn(ctx, r.db), "id = ?", id)
}

func (r *receptionistSaleRepository) Update(ctx context.Context, sale *entity.ReceptionistSale) error {
	return translate(conn(ctx, r.db).Save(sale).Error)
}

func (r *receptionistSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.ReceptionistSale{}, "id = ?", id).Error)
}

func (r *receptionistSaleRepository) List(ctx context.Context, filter domainRepo.ReceptionistSaleFilter) ([]entity.ReceptionistSale, error) {
	query := conn(ctx, r.db).Model(&entity.ReceptionistSale{}).Scopes(DateRange("date", filter.Range))
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Submitted != nil {
		query = query.Where("is_submitted = ?", *filter.Submitted)
	}

	var sales []entity.ReceptionistSale
	err := query.Order("date DESC, created_at DESC").Find(&sales).Error
	return sales, err
}

type storekeeperEntryRepository struct {
	db *gorm.DB
}

// NewStorekeeperEntryRepository creates a new storekeeper entry repository
func NewStorekeeperEntryRepository(db *gorm.DB) domainRepo.StorekeeperEntryRepository {
	return &storekeeperEntryRepository{db: db}
}

func (r *storekeeperEntryRepository) Create(ctx context.Context, entry *entity.StorekeeperEntry) error {
	return translate(conn(ctx, r.db).Create(entry).Error)
}

func (r *storekeeperEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StorekeeperEntry, error) {
	return first[entity.StorekeeperEntry](conn(ctx, r.db), "id = ?", id)
}

func (r *storekeeperEntryRepository) Update(ctx context.Context, entry *entity.StorekeeperEntry) error {
	return translate(conn(ctx, r.db).Save(entry).Error)
}

func (r *storekeeperEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.StorekeeperEntry{}, "id = ?", id).Error)
}

func (r *storekeeperEntryRepository) List(ctx context.Context, filter domainRepo.StorekeeperEntryFilter) ([]entity.StorekeeperEntry, error) {
	query := conn(ctx, r.db).Model(&entity.StorekeeperEntry{}).Scopes(DateRange("date", filter.Range))
	if filter.EntryType != "" {
		query = query.Where("entry_type = ?", filter.EntryType)
	}
	if filter.Submitted != nil {
		query = query.Where("is_submitted = ?", *filter.Submitted)
	}

	var entries []entity.StorekeeperEntry
	err := query.Order("date DESC, created_at DESC").Find(&entries).Error
	return entries, err
}

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(settlement).Error)
}

func (r *settlementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	return first[entity.Settlement](conn(ctx, r.db), "id = ?", id)
}

// GetByIDForUpdate takes a row lock so concurrent payment recording on the
// same settlement serializes on it.
func (r *settlementRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	return first[entity.Settlement](
		conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}),
		"id = ?", id,
	)
}

func (r *settlementRepository) GetByReceptionistSaleID(ctx context.Context, saleID uuid.UUID) (*entity.Settlement, error) {
	return first[entity.Settlement](conn(ctx, r.db), "receptionist_sale_id = ?", saleID)
}

func (r *settlementRepository) Update(ctx context.Context, settlement *entity.Settlement) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(settlement).Error)
}

func (r *settlementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Settlement{}, "id = ?", id).Error)
}

func (r *settlementRepository) List(ctx context.Context, filter domainRepo.SettlementFilter) ([]entity.Settlement, error) {
	query := conn(ctx, r.db).Model(&entity.Settlement{}).Scopes(DateRange("date", filter.Range))
	if filter.Settled != nil {
		query = query.Where("is_settled = ?", *filter.Settled)
	}

	var settlements []entity.Settlement
	err := query.Order("date DESC, created_at DESC").Find(&settlements).Error
	return settlements, err
}

type settlementPaymentRepository struct {
	db *gorm.DB
}

// NewSettlementPaymentRepository creates a new settlement payment repository
func NewSettlementPaymentRepository(db *gorm.DB) domainRepo.SettlementPaymentRepository {
	return &settlementPaymentRepository{db: db}
}

func (r *settlementPaymentRepository) Create(ctx context.Context, payment *entity.SettlementPayment) error {
	return translate(conn(ctx, r.db).Create(payment).Error)
}

func (r *settlementPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SettlementPayment, error) {
	return first[entity.SettlementPayment](conn(ctx, r.db), "id = ?", id)
}

func (r *settlementPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.SettlementPayment{}, "id = ?", id).Error)
}

func (r *settlementPaymentRepository) ListBySettlement(ctx context.Context, settlementID uuid.UUID) ([]entity.SettlementPayment, error) {
	var payments []entity.SettlementPayment
	err := conn(ctx, r.db).
		Where("settlement_id = ?", settlementID).
		Order("paid_at ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *settlementPaymentRepository) SumBySettlement(ctx context.Context, settlementID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := conn(ctx, r.db).Model(&entity.SettlementPayment{}).
		Where("settlement_id = ?", settlementID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

func (r *settlementPaymentRepository) List(ctx context.Context, rng period.Range) ([]entity.SettlementPayment, error) {
	var payments []entity.SettlementPayment
	err := conn(ctx, r.db).
		Scopes(DateRange("paid_at", rng)).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *auditLogRepository) List(ctx context.Context, filter domainRepo.AuditLogFilter, params *pagination.Params) ([]entity.AuditLog, int64, error) {
	query := conn(ctx, r.db).Model(&entity.AuditLog{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	var logs []entity.AuditLog
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("changed_at DESC").
		Find(&logs).Error
	return logs, total, err
}
