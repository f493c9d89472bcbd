package service

import (
	"context"
	"testing"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
)

func newSettingsService(settings *entity.Settings) *SettingsService {
	return NewSettingsService(&fakeSettingsRepo{settings: settings}, nil)
}

func TestInventoryRestockScenario(t *testing.T) {
	purchases := &fakePurchaseRepo{purchases: []entity.MaterialPurchase{
		{Type: enum.MaterialTypeSachetRoll, Quantity: 2, Cost: dec("62000"), Date: day("2026-10-01")},
		{Type: enum.MaterialTypePackingNylon, Quantity: 1, Cost: dec("100000"), Date: day("2026-10-01")},
	}}
	sales := &fakeSaleRepo{sales: []entity.Sale{
		{DriverName: "Musa", BagsSold: 800, PricePerBag: dec("250"), TotalAmount: dec("200000"), Date: day("2026-10-02")},
	}}
	svc := NewInventoryService(purchases, sales, newSettingsService(nil))

	st := svc.Status(context.Background(), nil)

	if st.SachetCapacity != 900 || st.NylonCapacity != 10000 {
		t.Fatalf("unexpected capacities %d/%d", st.SachetCapacity, st.NylonCapacity)
	}
	if st.EffectiveCapacity != 900 {
		t.Fatalf("expected effective capacity 900, got %d", st.EffectiveCapacity)
	}
	if st.TotalRemainingBags != 100 {
		t.Fatalf("expected 100 remaining bags, got %d", st.TotalRemainingBags)
	}
	if !st.NeedsRestock || st.Threshold != 4000 {
		t.Fatalf("expected restock at default threshold, got %+v", st)
	}
	if st.Partial {
		t.Fatalf("did not expect a partial status")
	}
}

func TestInventoryThresholdOverride(t *testing.T) {
	purchases := &fakePurchaseRepo{purchases: []entity.MaterialPurchase{
		{Type: enum.MaterialTypeSachetRoll, Quantity: 2, Date: day("2026-10-01")},
		{Type: enum.MaterialTypePackingNylon, Quantity: 1, Date: day("2026-10-01")},
	}}
	svc := NewInventoryService(purchases, &fakeSaleRepo{}, newSettingsService(nil))

	threshold := 500
	if st := svc.Status(context.Background(), &threshold); st.NeedsRestock {
		t.Fatalf("900 bags should not need a restock at threshold 500")
	}
}

func TestComputeInventoryFloor(t *testing.T) {
	st := ComputeInventory(1, 1, 5000, entity.DefaultSettings(), 10)
	if st.TotalRemainingBags != 0 {
		t.Fatalf("remaining bags must not go negative, got %d", st.TotalRemainingBags)
	}
	if st.SachetRemaining < 0 || st.NylonRemaining < 0 {
		t.Fatalf("per-material remaining must not go negative: %+v", st)
	}
	if !st.NeedsRestock {
		t.Fatalf("expected restock when sold out")
	}
}

func TestComputeInventoryMonotonic(t *testing.T) {
	settings := entity.DefaultSettings()

	prev := ComputeInventory(1, 1, 300, settings, 0).TotalRemainingBags
	for rolls := int64(2); rolls <= 10; rolls++ {
		cur := ComputeInventory(rolls, 1, 300, settings, 0).TotalRemainingBags
		if cur < prev {
			t.Fatalf("remaining fell from %d to %d when purchases grew", prev, cur)
		}
		prev = cur
	}

	prev = ComputeInventory(5, 1, 0, settings, 0).TotalRemainingBags
	for sold := int64(100); sold <= 3000; sold += 100 {
		cur := ComputeInventory(5, 1, sold, settings, 0).TotalRemainingBags
		if cur > prev {
			t.Fatalf("remaining rose from %d to %d when sales grew", prev, cur)
		}
		prev = cur
	}
}

func TestInventoryFallsBackOnReadFailure(t *testing.T) {
	svc := NewInventoryService(&fakePurchaseRepo{err: errStore}, &fakeSaleRepo{}, newSettingsService(nil))

	st := svc.Status(context.Background(), nil)
	if !st.Partial || !st.NeedsRestock {
		t.Fatalf("expected partial restock fallback, got %+v", st)
	}
	if st.TotalRemainingBags != 0 || st.EffectiveCapacity != 0 {
		t.Fatalf("expected zeroed figures, got %+v", st)
	}
}
