package service

import (
	"context"
	"strings"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceService manages the bag and material price lists
type PriceService struct {
	priceRepo repository.PriceRepository
}

// NewPriceService creates a new price service
func NewPriceService(priceRepo repository.PriceRepository) *PriceService {
	return &PriceService{priceRepo: priceRepo}
}

type PriceInput struct {
	Value     decimal.Decimal `json:"value"`
	Label     string          `json:"label"`
	SortOrder int             `json:"sortOrder"`
	IsActive  *bool           `json:"isActive"`
}

func (in *PriceInput) validate() error {
	var v apperror.Collector
	v.Check(in.Value.IsPositive(), "value", "must be greater than zero")
	v.Check(strings.TrimSpace(in.Label) != "", "label", "is required")
	return v.Err()
}

func checkList(list entity.PriceList) error {
	if !list.IsValid() {
		return apperror.NewNotFoundError("Price list")
	}
	return nil
}

// List returns the entries of list ordered by sortOrder.
func (s *PriceService) List(ctx context.Context, list entity.PriceList, activeOnly bool) ([]entity.Price, error) {
	if err := checkList(list); err != nil {
		return nil, err
	}
	return s.priceRepo.List(ctx, list, activeOnly)
}

func (s *PriceService) Create(ctx context.Context, list entity.PriceList, input *PriceInput) (*entity.Price, error) {
	if err := checkList(list); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	price := &entity.Price{
		Value:     input.Value,
		Label:     strings.TrimSpace(input.Label),
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		price.IsActive = *input.IsActive
	}
	if err := s.priceRepo.Create(ctx, list, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *PriceService) get(ctx context.Context, list entity.PriceList, id uuid.UUID) (*entity.Price, error) {
	if err := checkList(list); err != nil {
		return nil, err
	}
	price, err := s.priceRepo.GetByID(ctx, list, id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, apperror.NewNotFoundError("Price")
	}
	return price, nil
}

func (s *PriceService) Update(ctx context.Context, list entity.PriceList, id uuid.UUID, input *PriceInput) (*entity.Price, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	price, err := s.get(ctx, list, id)
	if err != nil {
		return nil, err
	}
	price.Value = input.Value
	price.Label = strings.TrimSpace(input.Label)
	price.SortOrder = input.SortOrder
	if input.IsActive != nil {
		price.IsActive = *input.IsActive
	}
	if err := s.priceRepo.Update(ctx, list, price); err != nil {
		return nil, err
	}
	return price, nil
}

// Toggle flips whether the price is offered.
func (s *PriceService) Toggle(ctx context.Context, list entity.PriceList, id uuid.UUID) (*entity.Price, error) {
	price, err := s.get(ctx, list, id)
	if err != nil {
		return nil, err
	}
	price.IsActive = !price.IsActive
	if err := s.priceRepo.Update(ctx, list, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *PriceService) Delete(ctx context.Context, list entity.PriceList, id uuid.UUID) error {
	if _, err := s.get(ctx, list, id); err != nil {
		return err
	}
	return s.priceRepo.Delete(ctx, list, id)
}
