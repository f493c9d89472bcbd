package service

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialPurchaseService handles material purchase operations
type MaterialPurchaseService struct {
	purchaseRepo repository.MaterialPurchaseRepository
}

// NewMaterialPurchaseService creates a new material purchase service
func NewMaterialPurchaseService(purchaseRepo repository.MaterialPurchaseRepository) *MaterialPurchaseService {
	return &MaterialPurchaseService{purchaseRepo: purchaseRepo}
}

// MaterialPurchaseInput is the body of a purchase create or update.
// Quantity counts rolls or packages, not bags.
type MaterialPurchaseInput struct {
	Type     enum.MaterialType `json:"type"`
	Quantity int               `json:"quantity"`
	Cost     decimal.Decimal   `json:"cost"`
	Date     period.Date       `json:"date"`
	Notes    *string           `json:"notes"`
}

func (in *MaterialPurchaseInput) validate() error {
	var v apperror.Collector
	v.Check(in.Type.IsValid(), "type", "must be one of sachet_roll, packing_nylon")
	v.Check(in.Quantity > 0, "quantity", "must be greater than zero")
	v.Check(!in.Cost.IsNegative(), "cost", "must not be negative")
	v.Check(!in.Date.IsZero(), "date", "is required")
	return v.Err()
}

func (in *MaterialPurchaseInput) apply(p *entity.MaterialPurchase) {
	p.Type = in.Type
	p.Quantity = in.Quantity
	p.Cost = in.Cost
	p.Date = in.Date
	p.Notes = in.Notes
}

// Create records a new purchase
func (s *MaterialPurchaseService) Create(ctx context.Context, input *MaterialPurchaseInput) (*entity.MaterialPurchase, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	purchase := &entity.MaterialPurchase{}
	input.apply(purchase)
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetByID retrieves a purchase by ID
func (s *MaterialPurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*entity.MaterialPurchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Material purchase")
	}
	return purchase, nil
}

func (s *MaterialPurchaseService) List(ctx context.Context, filter repository.MaterialPurchaseFilter) ([]entity.MaterialPurchase, error) {
	return s.purchaseRepo.List(ctx, filter)
}

// Update replaces a purchase
func (s *MaterialPurchaseService) Update(ctx context.Context, id uuid.UUID, input *MaterialPurchaseInput) (*entity.MaterialPurchase, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	purchase, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(purchase)
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Delete removes a purchase
func (s *MaterialPurchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.purchaseRepo.Delete(ctx, id)
}
