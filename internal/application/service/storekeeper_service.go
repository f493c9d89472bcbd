package service

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
)

// StorekeeperService handles warehouse movement records
type StorekeeperService struct {
	entryRepo repository.StorekeeperEntryRepository
}

// NewStorekeeperService creates a new storekeeper service
func NewStorekeeperService(entryRepo repository.StorekeeperEntryRepository) *StorekeeperService {
	return &StorekeeperService{entryRepo: entryRepo}
}

type StorekeeperEntryInput struct {
	Date       period.Date               `json:"date"`
	EntryType  enum.StorekeeperEntryType `json:"entryType"`
	DriverID   *uuid.UUID                `json:"driverId"`
	DriverName *string                   `json:"driverName"`
	PackerID   *uuid.UUID                `json:"packerId"`
	PackerName *string                   `json:"packerName"`
	BagsCount  int                       `json:"bagsCount"`
}

func (in *StorekeeperEntryInput) validate() error {
	var v apperror.Collector
	v.Check(!in.Date.IsZero(), "date", "is required")
	v.Check(in.EntryType.IsValid(), "entryType", "must be one of driver_pickup, general_sales, packer_production, ministore_pickup")
	v.Check(in.BagsCount > 0, "bagsCount", "must be greater than zero")
	if in.EntryType.NeedsDriver() {
		v.Check(in.DriverID != nil || (in.DriverName != nil && *in.DriverName != ""), "driverId", "is required for driver pickups")
	}
	if in.EntryType.NeedsPacker() {
		v.Check(in.PackerID != nil || (in.PackerName != nil && *in.PackerName != ""), "packerId", "is required for packer production")
	}
	return v.Err()
}

func (in *StorekeeperEntryInput) apply(e *entity.StorekeeperEntry) {
	e.Date = in.Date
	e.EntryType = in.EntryType
	e.DriverID = in.DriverID
	e.DriverName = in.DriverName
	e.PackerID = in.PackerID
	e.PackerName = in.PackerName
	e.BagsCount = in.BagsCount
}

func (s *StorekeeperService) Create(ctx context.Context, input *StorekeeperEntryInput, actor uuid.UUID) (*entity.StorekeeperEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	entry := &entity.StorekeeperEntry{SubmittedBy: actor}
	input.apply(entry)
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *StorekeeperService) GetByID(ctx context.Context, id uuid.UUID) (*entity.StorekeeperEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Storekeeper entry")
	}
	return entry, nil
}

func (s *StorekeeperService) List(ctx context.Context, filter repository.StorekeeperEntryFilter) ([]entity.StorekeeperEntry, error) {
	return s.entryRepo.List(ctx, filter)
}

func (s *StorekeeperService) Update(ctx context.Context, id uuid.UUID, input *StorekeeperEntryInput) (*entity.StorekeeperEntry, error) {
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

// Submit marks the entry as handed over. Submitting twice is a no-op.
func (s *StorekeeperService) Submit(ctx context.Context, id uuid.UUID) (*entity.StorekeeperEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.IsSubmitted {
		return entry, nil
	}
	now := time.Now().UTC()
	entry.IsSubmitted = true
	entry.SubmittedAt = &now
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *StorekeeperService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.entryRepo.Delete(ctx, id)
}
