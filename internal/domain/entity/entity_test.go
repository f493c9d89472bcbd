package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSaleComputedTotal(t *testing.T) {
	s := Sale{BagsSold: 100, PricePerBag: dec("250")}
	if !s.ComputedTotal().Equal(dec("25000")) {
		t.Fatalf("got %s", s.ComputedTotal())
	}
}

func TestSettingsMaterialCostPerBag(t *testing.T) {
	s := DefaultSettings()
	if !s.SachetCostPerBag().Equal(dec("68.89")) {
		t.Fatalf("sachet per bag: %s", s.SachetCostPerBag())
	}
	if !s.NylonCostPerBag().Equal(dec("10")) {
		t.Fatalf("nylon per bag: %s", s.NylonCostPerBag())
	}
	if !s.MaterialCostPerBag().Equal(dec("78.89")) {
		t.Fatalf("per bag: %s", s.MaterialCostPerBag())
	}
}

func TestReceptionistSaleRecompute(t *testing.T) {
	r := ReceptionistSale{BagsAtPrice1: 10, BagsAtPrice2: 5}
	r.Recompute(dec("250"), dec("230"))
	if r.TotalBags != 15 || !r.ExpectedAmount.Equal(dec("3650")) {
		t.Fatalf("legacy: %d %s", r.TotalBags, r.ExpectedAmount)
	}

	r.PriceBreakdown = JSONList[PriceBreakdownItem]{
		{PriceID: uuid.New(), Amount: dec("250"), Bags: 20},
		{PriceID: uuid.New(), Amount: dec("200"), Bags: 3},
	}
	r.Recompute(dec("250"), dec("230"))
	if r.TotalBags != 23 || !r.ExpectedAmount.Equal(dec("5600")) {
		t.Fatalf("breakdown: %d %s", r.TotalBags, r.ExpectedAmount)
	}
}

func TestSettlementApplySettled(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := Settlement{ExpectedAmount: dec("10000")}

	s.ApplySettled(dec("10000"), now)
	if !s.IsSettled || !s.RemainingBalance.IsZero() || s.SettledAt == nil {
		t.Fatalf("expected settled: %+v", s)
	}

	s.ApplySettled(dec("12000"), now)
	if !s.RemainingBalance.Equal(dec("-2000")) || !s.IsSettled {
		t.Fatalf("overpayment must surface as negative balance: %s", s.RemainingBalance)
	}

	s.ApplySettled(dec("6000"), now)
	if s.IsSettled || s.SettledAt != nil || !s.RemainingBalance.Equal(dec("4000")) {
		t.Fatalf("expected reopened settlement: %+v", s)
	}
}

func TestJSONListRoundTrip(t *testing.T) {
	var l JSONList[PriceBreakdownItem]
	if err := l.Scan([]byte(`[{"priceId":"00000000-0000-0000-0000-000000000001","amount":"250","bags":4}]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(l) != 1 || l[0].Bags != 4 || !l[0].Amount.Equal(dec("250")) {
		t.Fatalf("unexpected %+v", l)
	}
	v, err := JSONList[int](nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("nil list must store [], got %v %v", v, err)
	}
}

func TestUserHasRole(t *testing.T) {
	admin := User{Role: "admin"}
	if !admin.HasRole("storekeeper") {
		t.Fatalf("admin holds every role")
	}
	rec := User{Role: "receptionist"}
	if rec.HasRole("storekeeper") || !rec.HasRole("storekeeper", "receptionist") {
		t.Fatalf("unexpected role check")
	}
}
