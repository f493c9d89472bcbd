package service

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
)

// PackerEntryService handles packer production records
type PackerEntryService struct {
	entryRepo repository.PackerEntryRepository
}

// NewPackerEntryService creates a new packer entry service
func NewPackerEntryService(entryRepo repository.PackerEntryRepository) *PackerEntryService {
	return &PackerEntryService{entryRepo: entryRepo}
}

type PackerEntryInput struct {
	PackerName  string      `json:"packerName"`
	PackerEmail *string     `json:"packerEmail"`
	EmployeeID  *uuid.UUID  `json:"employeeId"`
	BagsPacked  int         `json:"bagsPacked"`
	Date        period.Date `json:"date"`
	Notes       *string     `json:"notes"`
}

func (in *PackerEntryInput) validate() error {
	var v apperror.Collector
	v.Check(in.PackerName != "", "packerName", "is required")
	v.Check(in.BagsPacked > 0, "bagsPacked", "must be greater than zero")
	v.Check(!in.Date.IsZero(), "date", "is required")
	return v.Err()
}

func (in *PackerEntryInput) apply(e *entity.PackerEntry) {
	e.PackerName = in.PackerName
	e.PackerEmail = in.PackerEmail
	e.EmployeeID = in.EmployeeID
	e.BagsPacked = in.BagsPacked
	e.Date = in.Date
	e.Notes = in.Notes
}

func (s *PackerEntryService) Create(ctx context.Context, input *PackerEntryInput) (*entity.PackerEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	entry := &entity.PackerEntry{}
	input.apply(entry)
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *PackerEntryService) GetByID(ctx context.Context, id uuid.UUID) (*entity.PackerEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Packer entry")
	}
	return entry, nil
}

func (s *PackerEntryService) List(ctx context.Context, filter repository.PackerEntryFilter) ([]entity.PackerEntry, error) {
	return s.entryRepo.List(ctx, filter)
}

func (s *PackerEntryService) Update(ctx context.Context, id uuid.UUID, input *PackerEntryInput) (*entity.PackerEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(entry)
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *PackerEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.entryRepo.Delete(ctx, id)
}
