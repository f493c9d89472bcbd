package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type settlementFixture struct {
	tx          *fakeTx
	settlements *fakeSettlementRepo
	payments    *fakePaymentRepo
	sales       *fakeReceptionistSaleRepo
	audit       *fakeAuditRepo
	svc         *SettlementService
	actor       uuid.UUID
	saleID      uuid.UUID
}

func newSettlementFixture(expected string) *settlementFixture {
	f := &settlementFixture{
		tx:          &fakeTx{},
		settlements: newFakeSettlementRepo(),
		payments:    &fakePaymentRepo{},
		sales:       newFakeReceptionistSaleRepo(),
		audit:       &fakeAuditRepo{},
		actor:       uuid.New(),
	}
	f.svc = NewSettlementService(f.tx, f.settlements, f.payments, f.sales, NewAuditService(f.audit))
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	sale := &entity.ReceptionistSale{
		Date:           day("2026-10-16"),
		SaleType:       enum.SaleTypeDriver,
		TotalBags:      40,
		ExpectedAmount: dec(expected),
	}
	_ = f.sales.Create(context.Background(), sale)
	f.saleID = sale.ID
	return f
}

func (f *settlementFixture) open(t *testing.T, initial string) *entity.Settlement {
	t.Helper()
	s, err := f.svc.Create(context.Background(), &CreateSettlementInput{
		ReceptionistSaleID:   f.saleID,
		InitialSettledAmount: dec(initial),
	}, f.actor)
	if err != nil {
		t.Fatalf("create settlement: %v", err)
	}
	return s
}

func (f *settlementFixture) pay(t *testing.T, id uuid.UUID, amount string) *PaymentResult {
	t.Helper()
	res, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{SettlementID: id, Amount: dec(amount)}, f.actor)
	if err != nil {
		t.Fatalf("record payment %s: %v", amount, err)
	}
	return res
}

// assertConsistent checks the stored settlement against its payment rows.
func (f *settlementFixture) assertConsistent(t *testing.T, id uuid.UUID) {
	t.Helper()
	stored := f.settlements.settlements[id]
	sum, _ := f.payments.SumBySettlement(context.Background(), id)
	if !stored.SettledAmount.Equal(sum) {
		t.Fatalf("settledAmount %s != sum of payments %s", stored.SettledAmount, sum)
	}
	if !stored.RemainingBalance.Equal(stored.ExpectedAmount.Sub(sum)) {
		t.Fatalf("remainingBalance %s != expected - settled", stored.RemainingBalance)
	}
	if stored.IsSettled != stored.RemainingBalance.LessThanOrEqual(decimal.Zero) {
		t.Fatalf("isSettled %v inconsistent with balance %s", stored.IsSettled, stored.RemainingBalance)
	}
}

func assertBalance(t *testing.T, s *entity.Settlement, settled, remaining string, isSettled bool) {
	t.Helper()
	if !s.SettledAmount.Equal(dec(settled)) || !s.RemainingBalance.Equal(dec(remaining)) || s.IsSettled != isSettled {
		t.Fatalf("expected settled=%s remaining=%s isSettled=%v, got %s/%s/%v",
			settled, remaining, isSettled, s.SettledAmount, s.RemainingBalance, s.IsSettled)
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected app error with status %d, got %v", status, err)
	}
	if appErr.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, appErr.Code, appErr.Message)
	}
}

func TestSettlementPaymentsSettle(t *testing.T) {
	f := newSettlementFixture("10000")

	s := f.open(t, "0")
	assertBalance(t, s, "0", "10000", false)
	f.assertConsistent(t, s.ID)

	res := f.pay(t, s.ID, "4000")
	assertBalance(t, res.Settlement, "4000", "6000", false)
	f.assertConsistent(t, s.ID)

	res = f.pay(t, s.ID, "6000")
	assertBalance(t, res.Settlement, "10000", "0", true)
	if res.Settlement.SettledAt == nil {
		t.Fatalf("expected settledAt once fully paid")
	}
	f.assertConsistent(t, s.ID)

	if f.settlements.locks != 2 {
		t.Fatalf("expected each payment to lock the settlement, got %d locks", f.settlements.locks)
	}
}

func TestSettlementDeletePaymentRecomputes(t *testing.T) {
	f := newSettlementFixture("10000")
	s := f.open(t, "0")
	first := f.pay(t, s.ID, "4000")
	f.pay(t, s.ID, "6000")

	updated, err := f.svc.DeletePayment(context.Background(), first.Payment.ID, f.actor)
	if err != nil {
		t.Fatalf("delete payment: %v", err)
	}
	assertBalance(t, updated, "6000", "4000", false)
	if updated.SettledAt != nil {
		t.Fatalf("settledAt must clear when the balance reopens")
	}
	f.assertConsistent(t, s.ID)

	_, err = f.svc.DeletePayment(context.Background(), first.Payment.ID, f.actor)
	assertStatus(t, err, http.StatusNotFound)
}

func TestSettlementOverpaymentGoesNegative(t *testing.T) {
	f := newSettlementFixture("1000")
	s := f.open(t, "0")

	res := f.pay(t, s.ID, "1500")
	assertBalance(t, res.Settlement, "1500", "-500", true)
	f.assertConsistent(t, s.ID)
}

func TestSettlementInitialAmountIsAPayment(t *testing.T) {
	f := newSettlementFixture("10000")
	s := f.open(t, "2500")

	assertBalance(t, s, "2500", "7500", false)
	if len(f.payments.payments) != 1 || !f.payments.payments[0].Amount.Equal(dec("2500")) {
		t.Fatalf("expected the initial amount as a payment row, got %+v", f.payments.payments)
	}
	if !s.Date.Equal(day("2026-10-16").Time) {
		t.Fatalf("date must default to the sale date, got %s", s.Date)
	}
	f.assertConsistent(t, s.ID)
}

func TestSettlementRejectsNonPositivePayment(t *testing.T) {
	f := newSettlementFixture("10000")
	s := f.open(t, "0")

	for _, amount := range []string{"0", "-5"} {
		_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{SettlementID: s.ID, Amount: dec(amount)}, f.actor)
		assertStatus(t, err, http.StatusBadRequest)
	}
	if len(f.payments.payments) != 0 {
		t.Fatalf("rejected payments must not be stored")
	}
}

func TestSettlementCreateErrors(t *testing.T) {
	f := newSettlementFixture("10000")
	f.open(t, "0")

	_, err := f.svc.Create(context.Background(), &CreateSettlementInput{ReceptionistSaleID: f.saleID}, f.actor)
	assertStatus(t, err, http.StatusConflict)

	_, err = f.svc.Create(context.Background(), &CreateSettlementInput{ReceptionistSaleID: uuid.New()}, f.actor)
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{SettlementID: uuid.New(), Amount: dec("10")}, f.actor)
	assertStatus(t, err, http.StatusNotFound)
}

func TestSettlementUpdateExpectedAmount(t *testing.T) {
	f := newSettlementFixture("10000")
	s := f.open(t, "0")
	f.pay(t, s.ID, "8000")

	expected := dec("8000")
	updated, err := f.svc.Update(context.Background(), s.ID, &UpdateSettlementInput{ExpectedAmount: &expected}, f.actor)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertBalance(t, updated, "8000", "0", true)
	f.assertConsistent(t, s.ID)

	var updates int
	for _, l := range f.audit.logs {
		if l.Action == enum.AuditActionUpdate {
			updates++
		}
	}
	if updates != 1 {
		t.Fatalf("expected one update audit entry, got %d", updates)
	}
}

func TestSettlementInvariantHoldsAfterEveryStep(t *testing.T) {
	f := newSettlementFixture("5000")
	s := f.open(t, "1000")
	ctx := context.Background()

	var ids []uuid.UUID
	for _, amount := range []string{"700", "1300", "2500", "400"} {
		ids = append(ids, f.pay(t, s.ID, amount).Payment.ID)
		f.assertConsistent(t, s.ID)
	}
	for _, id := range ids {
		if _, err := f.svc.DeletePayment(ctx, id, f.actor); err != nil {
			t.Fatalf("delete payment: %v", err)
		}
		f.assertConsistent(t, s.ID)
	}

	got, err := f.svc.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertBalance(t, got, "1000", "4000", false)
	if len(got.Payments) != 1 {
		t.Fatalf("expected only the initial payment to remain, got %d", len(got.Payments))
	}
}

func TestSettlementReceipt(t *testing.T) {
	f := newSettlementFixture("10000")
	s := f.open(t, "0")
	f.pay(t, s.ID, "4000")

	r, err := f.svc.Receipt(context.Background(), s.ID, "Aqua Pure")
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if r.BusinessName != "Aqua Pure" || r.TotalBags != 40 || len(r.Payments) != 1 {
		t.Fatalf("unexpected receipt %+v", r)
	}
	if !r.RemainingBalance.Equal(dec("6000")) {
		t.Fatalf("unexpected balance %s", r.RemainingBalance)
	}
}
