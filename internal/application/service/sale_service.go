package service

import (
	"context"
	"strconv"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService handles sale-related operations
type SaleService struct {
	saleRepo repository.SaleRepository
	audit    *AuditService
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, audit *AuditService) *SaleService {
	return &SaleService{saleRepo: saleRepo, audit: audit}
}

// SaleInput is the body of a sale create or update. TotalAmount defaults
// to bagsSold × pricePerBag; an explicit value overrides it.
type SaleInput struct {
	DriverName        string           `json:"driverName"`
	DriverEmail       *string          `json:"driverEmail"`
	EmployeeID        *uuid.UUID       `json:"employeeId"`
	BagsSold          int              `json:"bagsSold"`
	PricePerBag       decimal.Decimal  `json:"pricePerBag"`
	TotalAmount       *decimal.Decimal `json:"totalAmount"`
	Date              period.Date      `json:"date"`
	Notes             *string          `json:"notes"`
	MaterialPriceRefs []uuid.UUID      `json:"materialPriceRefs"`
	Reason            *string          `json:"reason"`
}

func (in *SaleInput) validate() error {
	var v apperror.Collector
	v.Check(in.DriverName != "", "driverName", "is required")
	v.Check(in.BagsSold > 0, "bagsSold", "must be greater than zero")
	v.Check(in.PricePerBag.IsPositive(), "pricePerBag", "must be greater than zero")
	v.Check(!in.Date.IsZero(), "date", "is required")
	if in.TotalAmount != nil {
		v.Check(!in.TotalAmount.IsNegative(), "totalAmount", "must not be negative")
	}
	return v.Err()
}

func (in *SaleInput) apply(sale *entity.Sale) {
	sale.DriverName = in.DriverName
	sale.DriverEmail = in.DriverEmail
	sale.EmployeeID = in.EmployeeID
	sale.BagsSold = in.BagsSold
	sale.PricePerBag = in.PricePerBag
	sale.Date = in.Date
	sale.Notes = in.Notes
	sale.MaterialPriceRefs = in.MaterialPriceRefs
	if in.TotalAmount != nil {
		sale.TotalAmount = *in.TotalAmount
	} else {
		sale.TotalAmount = sale.ComputedTotal()
	}
}

// Create records a new sale
func (s *SaleService) Create(ctx context.Context, input *SaleInput) (*entity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sale := &entity.Sale{}
	input.apply(sale)
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// List returns sales matching filter, newest first
func (s *SaleService) List(ctx context.Context, filter repository.SaleFilter) ([]entity.Sale, error) {
	return s.saleRepo.List(ctx, filter)
}

// Update replaces a sale
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, input *SaleInput, actor uuid.UUID) (*entity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sale, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes Changes
	before := *sale
	input.apply(sale)
	changes.Track("bagsSold", strconv.Itoa(before.BagsSold), strconv.Itoa(sale.BagsSold))
	changes.Track("pricePerBag", before.PricePerBag.StringFixed(2), sale.PricePerBag.StringFixed(2))
	changes.Track("totalAmount", before.TotalAmount.StringFixed(2), sale.TotalAmount.StringFixed(2))
	changes.Track("date", before.Date.String(), sale.Date.String())
	changes.Track("driverName", before.DriverName, sale.DriverName)

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.audit.RecordChanges(ctx, AuditEntitySale, id, changes, actor, input.Reason)
	return sale, nil
}

// Delete removes a sale
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntitySale, id, enum.AuditActionDelete, actor, nil)
	return nil
}
