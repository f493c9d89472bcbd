package service

import (
	"context"
	"strconv"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
)

// ReceptionistSaleService handles the front desk sales record
type ReceptionistSaleService struct {
	saleRepo repository.ReceptionistSaleRepository
	settings *SettingsService
	audit    *AuditService
}

// NewReceptionistSaleService creates a new receptionist sale service
func NewReceptionistSaleService(saleRepo repository.ReceptionistSaleRepository, settings *SettingsService, audit *AuditService) *ReceptionistSaleService {
	return &ReceptionistSaleService{saleRepo: saleRepo, settings: settings, audit: audit}
}

// ReceptionistSaleInput is the body of a receptionist sale. When
// PriceBreakdown is present the legacy two-price fields are ignored.
type ReceptionistSaleInput struct {
	Date           period.Date                 `json:"date"`
	DriverID       *uuid.UUID                  `json:"driverId"`
	DriverName     *string                     `json:"driverName"`
	SaleType       enum.SaleType               `json:"saleType"`
	BagsAtPrice1   int                         `json:"bagsAtPrice1"`
	BagsAtPrice2   int                         `json:"bagsAtPrice2"`
	PriceBreakdown []entity.PriceBreakdownItem `json:"priceBreakdown"`
	Reason         *string                     `json:"reason"`
}

func (in *ReceptionistSaleInput) validate() error {
	var v apperror.Collector
	v.Check(!in.Date.IsZero(), "date", "is required")
	v.Check(in.SaleType.IsValid(), "saleType", "must be one of driver, general, mini_store")
	if in.SaleType == enum.SaleTypeDriver {
		v.Check(in.DriverID != nil || (in.DriverName != nil && *in.DriverName != ""), "driverId", "is required for driver sales")
	}
	if len(in.PriceBreakdown) > 0 {
		bags := 0
		for i, item := range in.PriceBreakdown {
			field := "priceBreakdown[" + strconv.Itoa(i) + "]"
			v.Check(item.Bags >= 0, field+".bags", "must not be negative")
			v.Check(!item.Amount.IsNegative(), field+".amount", "must not be negative")
			bags += item.Bags
		}
		v.Check(bags > 0, "priceBreakdown", "must contain at least one bag")
	} else {
		v.Check(in.BagsAtPrice1 >= 0, "bagsAtPrice1", "must not be negative")
		v.Check(in.BagsAtPrice2 >= 0, "bagsAtPrice2", "must not be negative")
		v.Check(in.BagsAtPrice1+in.BagsAtPrice2 > 0, "bagsAtPrice1", "at least one bag is required")
	}
	return v.Err()
}

func (s *ReceptionistSaleService) apply(ctx context.Context, input *ReceptionistSaleInput, sale *entity.ReceptionistSale) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	sale.Date = input.Date
	sale.DriverID = input.DriverID
	sale.DriverName = input.DriverName
	sale.SaleType = input.SaleType
	sale.BagsAtPrice1 = input.BagsAtPrice1
	sale.BagsAtPrice2 = input.BagsAtPrice2
	sale.PriceBreakdown = input.PriceBreakdown
	sale.Recompute(settings.SalesPrice1, settings.SalesPrice2)
	return nil
}

func (s *ReceptionistSaleService) Create(ctx context.Context, input *ReceptionistSaleInput, actor uuid.UUID) (*entity.ReceptionistSale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sale := &entity.ReceptionistSale{SubmittedBy: actor}
	if err := s.apply(ctx, input, sale); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *ReceptionistSaleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceptionistSale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Receptionist sale")
	}
	return sale, nil
}

func (s *ReceptionistSaleService) List(ctx context.Context, filter repository.ReceptionistSaleFilter) ([]entity.ReceptionistSale, error) {
	return s.saleRepo.List(ctx, filter)
}

// Update replaces a receptionist sale. An existing settlement keeps its own
// expected amount.
func (s *ReceptionistSaleService) Update(ctx context.Context, id uuid.UUID, input *ReceptionistSaleInput, actor uuid.UUID) (*entity.ReceptionistSale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sale, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *sale
	if err := s.apply(ctx, input, sale); err != nil {
		return nil, err
	}
	var changes Changes
	changes.Track("totalBags", strconv.Itoa(before.TotalBags), strconv.Itoa(sale.TotalBags))
	changes.Track("expectedAmount", before.ExpectedAmount.StringFixed(2), sale.ExpectedAmount.StringFixed(2))
	changes.Track("date", before.Date.String(), sale.Date.String())
	changes.Track("saleType", before.SaleType.String(), sale.SaleType.String())

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.audit.RecordChanges(ctx, AuditEntityReceptionistSale, id, changes, actor, input.Reason)
	return sale, nil
}

// Submit hands the sale over for settlement. Submitting twice is a no-op.
func (s *ReceptionistSaleService) Submit(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*entity.ReceptionistSale, error) {
	sale, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.IsSubmitted {
		return sale, nil
	}
	now := time.Now().UTC()
	sale.IsSubmitted = true
	sale.SubmittedAt = &now
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntityReceptionistSale, id, enum.AuditActionSubmit, actor, nil)
	return sale, nil
}

// Delete removes a receptionist sale. A sale that has a settlement is
// protected by the foreign key and yields a conflict.
func (s *ReceptionistSaleService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntityReceptionistSale, id, enum.AuditActionDelete, actor, nil)
	return nil
}
