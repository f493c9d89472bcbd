package service

import (
	"context"
	"log"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/period"
)

// InventoryStatus is the producible bag capacity left from all purchases
// after all sales. Each bag uses one unit of both materials.
type InventoryStatus struct {
	TotalSachetRolls   int64 `json:"totalSachetRolls"`
	TotalPackingNylon  int64 `json:"totalPackingNylon"`
	SachetCapacity     int64 `json:"sachetCapacity"`
	NylonCapacity      int64 `json:"nylonCapacity"`
	EffectiveCapacity  int64 `json:"effectiveCapacity"`
	TotalBagsSold      int64 `json:"totalBagsSold"`
	SachetUsed         int64 `json:"sachetUsed"`
	NylonUsed          int64 `json:"nylonUsed"`
	SachetRemaining    int64 `json:"sachetRemaining"`
	NylonRemaining     int64 `json:"nylonRemaining"`
	TotalRemainingBags int64 `json:"totalRemainingBags"`
	Threshold          int   `json:"threshold"`
	NeedsRestock       bool  `json:"needsRestock"`
	Partial            bool  `json:"partial,omitempty"`
}

// InventoryService derives stock from purchases and sales
type InventoryService struct {
	purchaseRepo repository.MaterialPurchaseRepository
	saleRepo     repository.SaleRepository
	settings     *SettingsService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	purchaseRepo repository.MaterialPurchaseRepository,
	saleRepo repository.SaleRepository,
	settings *SettingsService,
) *InventoryService {
	return &InventoryService{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		settings:     settings,
	}
}

// Status computes inventory over the full history. A nil threshold uses the
// configured one. Read failures yield an all-zero status that asks for a
// restock, never an error.
func (s *InventoryService) Status(ctx context.Context, threshold *int) *InventoryStatus {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return s.fallback("settings", err)
	}
	quantities, err := s.purchaseRepo.SumQuantityByType(ctx)
	if err != nil {
		return s.fallback("material purchases", err)
	}
	sold, err := s.saleRepo.SumBagsSold(ctx, period.Range{})
	if err != nil {
		return s.fallback("sales", err)
	}

	limit := settings.InventoryLowThreshold
	if threshold != nil {
		limit = *threshold
	}

	status := ComputeInventory(
		quantities[enum.MaterialTypeSachetRoll],
		quantities[enum.MaterialTypePackingNylon],
		sold,
		settings,
		limit,
	)
	return &status
}

func (s *InventoryService) fallback(source string, err error) *InventoryStatus {
	log.Printf("inventory status: failed to read %s: %v", source, err)
	return &InventoryStatus{NeedsRestock: true, Partial: true}
}

// ComputeInventory applies the capacity rules to raw totals.
func ComputeInventory(sachetRolls, packingNylon, bagsSold int64, settings *entity.Settings, threshold int) InventoryStatus {
	st := InventoryStatus{
		TotalSachetRolls:  sachetRolls,
		TotalPackingNylon: packingNylon,
		SachetCapacity:    sachetRolls * int64(settings.SachetRollBagsPerRoll),
		NylonCapacity:     packingNylon * int64(settings.PackingNylonBagsPerPackage),
		TotalBagsSold:     bagsSold,
		Threshold:         threshold,
	}

	st.EffectiveCapacity = min(st.SachetCapacity, st.NylonCapacity)
	st.TotalRemainingBags = max(0, st.EffectiveCapacity-bagsSold)

	st.SachetUsed = min(bagsSold, st.SachetCapacity)
	st.NylonUsed = min(bagsSold, st.NylonCapacity)
	st.SachetRemaining = st.SachetCapacity - st.SachetUsed
	st.NylonRemaining = st.NylonCapacity - st.NylonUsed

	st.NeedsRestock = st.TotalRemainingBags < int64(threshold)
	return st
}
