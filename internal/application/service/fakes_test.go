package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/pagination"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errStore = errors.New("store unavailable")

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type fakeTx struct{ calls int }

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeSettingsRepo struct {
	settings *entity.Settings
	err      error
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.Settings, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *entity.Settings) error {
	cp := *s
	r.settings = &cp
	return nil
}

type fakeSaleRepo struct {
	sales []entity.Sale
	err   error
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if r.err != nil {
		return r.err
	}
	newID(&s.ID)
	r.sales = append(r.sales, *s)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(_ context.Context, s *entity.Sale) error {
	for i := range r.sales {
		if r.sales[i].ID == s.ID {
			r.sales[i] = *s
		}
	}
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	out := r.sales[:0]
	for _, s := range r.sales {
		if s.ID != id {
			out = append(out, s)
		}
	}
	r.sales = out
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, f repository.SaleFilter) ([]entity.Sale, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Sale
	for _, s := range r.sales {
		if !f.Range.Contains(s.Date.Time) {
			continue
		}
		if f.EmployeeID != nil && (s.EmployeeID == nil || *s.EmployeeID != *f.EmployeeID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) SumBagsSold(ctx context.Context, rg period.Range) (int64, error) {
	sales, err := r.List(ctx, repository.SaleFilter{Range: rg})
	if err != nil {
		return 0, err
	}
	var total int64
	for _, s := range sales {
		total += int64(s.BagsSold)
	}
	return total, nil
}

type fakeExpenseRepo struct {
	expenses []entity.Expense
	err      error
	failAt   int
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	if r.err != nil {
		return r.err
	}
	newID(&e.ID)
	r.expenses = append(r.expenses, *e)
	return nil
}

// CreateBatch fails the whole batch when failAt points into it.
func (r *fakeExpenseRepo) CreateBatch(_ context.Context, es []entity.Expense) error {
	if r.failAt > 0 && r.failAt <= len(es) {
		return errStore
	}
	for i := range es {
		newID(&es[i].ID)
	}
	r.expenses = append(r.expenses, es...)
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			cp := r.expenses[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	for i := range r.expenses {
		if r.expenses[i].ID == e.ID {
			r.expenses[i] = *e
		}
	}
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	out := r.expenses[:0]
	for _, e := range r.expenses {
		if e.ID != id {
			out = append(out, e)
		}
	}
	r.expenses = out
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]entity.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Expense
	for _, e := range r.expenses {
		if !f.Range.Contains(e.Date.Time) {
			continue
		}
		if f.Type != "" && e.Type.Normalize() != f.Type.Normalize() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakePurchaseRepo struct {
	purchases []entity.MaterialPurchase
	err       error
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.MaterialPurchase) error {
	newID(&p.ID)
	r.purchases = append(r.purchases, *p)
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MaterialPurchase, error) {
	for i := range r.purchases {
		if r.purchases[i].ID == id {
			cp := r.purchases[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) Update(_ context.Context, p *entity.MaterialPurchase) error { return nil }

func (r *fakePurchaseRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (r *fakePurchaseRepo) List(_ context.Context, f repository.MaterialPurchaseFilter) ([]entity.MaterialPurchase, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.MaterialPurchase
	for _, p := range r.purchases {
		if f.Range.Contains(p.Date.Time) && (f.Type == "" || p.Type == f.Type) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) SumQuantityByType(context.Context) (map[enum.MaterialType]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := map[enum.MaterialType]int64{}
	for _, p := range r.purchases {
		out[p.Type] += int64(p.Quantity)
	}
	return out, nil
}

type fakePackerRepo struct {
	entries []entity.PackerEntry
	err     error
}

func (r *fakePackerRepo) Create(_ context.Context, e *entity.PackerEntry) error {
	newID(&e.ID)
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakePackerRepo) GetByID(context.Context, uuid.UUID) (*entity.PackerEntry, error) {
	return nil, nil
}

func (r *fakePackerRepo) Update(context.Context, *entity.PackerEntry) error { return nil }

func (r *fakePackerRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakePackerRepo) List(_ context.Context, f repository.PackerEntryFilter) ([]entity.PackerEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.PackerEntry
	for _, e := range r.entries {
		if !f.Range.Contains(e.Date.Time) {
			continue
		}
		if f.EmployeeID != nil && (e.EmployeeID == nil || *e.EmployeeID != *f.EmployeeID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeSalaryRepo struct {
	payments []entity.SalaryPayment
	err      error
}

func (r *fakeSalaryRepo) Create(_ context.Context, p *entity.SalaryPayment) error {
	newID(&p.ID)
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakeSalaryRepo) GetByID(context.Context, uuid.UUID) (*entity.SalaryPayment, error) {
	return nil, nil
}

func (r *fakeSalaryRepo) Update(context.Context, *entity.SalaryPayment) error { return nil }

func (r *fakeSalaryRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeSalaryRepo) List(_ context.Context, f repository.SalaryPaymentFilter) ([]entity.SalaryPayment, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.SalaryPayment
	for _, p := range r.payments {
		if f.Range.Contains(p.PaidDate.Time) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []entity.Employee
	err       error
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	newID(&e.ID)
	r.employees = append(r.employees, *e)
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.employees {
		if r.employees[i].ID == id {
			cp := r.employees[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	for i := range r.employees {
		if r.employees[i].Email == email {
			cp := r.employees[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *entity.Employee) error { return nil }

func (r *fakeEmployeeRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeEmployeeRepo) List(context.Context) ([]entity.Employee, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]entity.Employee(nil), r.employees...), nil
}

type fakeReceptionistSaleRepo struct {
	sales map[uuid.UUID]entity.ReceptionistSale
}

func newFakeReceptionistSaleRepo() *fakeReceptionistSaleRepo {
	return &fakeReceptionistSaleRepo{sales: map[uuid.UUID]entity.ReceptionistSale{}}
}

func (r *fakeReceptionistSaleRepo) Create(_ context.Context, s *entity.ReceptionistSale) error {
	newID(&s.ID)
	r.sales[s.ID] = *s
	return nil
}

func (r *fakeReceptionistSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ReceptionistSale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeReceptionistSaleRepo) Update(_ context.Context, s *entity.ReceptionistSale) error {
	r.sales[s.ID] = *s
	return nil
}

func (r *fakeReceptionistSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeReceptionistSaleRepo) List(context.Context, repository.ReceptionistSaleFilter) ([]entity.ReceptionistSale, error) {
	var out []entity.ReceptionistSale
	for _, s := range r.sales {
		out = append(out, s)
	}
	return out, nil
}

type fakeSettlementRepo struct {
	settlements map[uuid.UUID]entity.Settlement
	locks       int
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{settlements: map[uuid.UUID]entity.Settlement{}}
}

func (r *fakeSettlementRepo) Create(_ context.Context, s *entity.Settlement) error {
	newID(&s.ID)
	r.settlements[s.ID] = *s
	return nil
}

func (r *fakeSettlementRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Settlement, error) {
	s, ok := r.settlements[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSettlementRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	r.locks++
	return r.GetByID(ctx, id)
}

func (r *fakeSettlementRepo) GetByReceptionistSaleID(_ context.Context, saleID uuid.UUID) (*entity.Settlement, error) {
	for _, s := range r.settlements {
		if s.ReceptionistSaleID == saleID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSettlementRepo) Update(_ context.Context, s *entity.Settlement) error {
	cp := *s
	cp.Payments = nil
	r.settlements[s.ID] = cp
	return nil
}

func (r *fakeSettlementRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.settlements, id)
	return nil
}

func (r *fakeSettlementRepo) List(context.Context, repository.SettlementFilter) ([]entity.Settlement, error) {
	var out []entity.Settlement
	for _, s := range r.settlements {
		out = append(out, s)
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []entity.SettlementPayment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.SettlementPayment) error {
	newID(&p.ID)
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SettlementPayment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			cp := r.payments[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	out := r.payments[:0]
	for _, p := range r.payments {
		if p.ID != id {
			out = append(out, p)
		}
	}
	r.payments = out
	return nil
}

func (r *fakePaymentRepo) ListBySettlement(_ context.Context, settlementID uuid.UUID) ([]entity.SettlementPayment, error) {
	var out []entity.SettlementPayment
	for _, p := range r.payments {
		if p.SettlementID == settlementID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out, nil
}

func (r *fakePaymentRepo) SumBySettlement(ctx context.Context, settlementID uuid.UUID) (decimal.Decimal, error) {
	payments, _ := r.ListBySettlement(ctx, settlementID)
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (r *fakePaymentRepo) List(_ context.Context, rg period.Range) ([]entity.SettlementPayment, error) {
	var out []entity.SettlementPayment
	for _, p := range r.payments {
		if rg.Contains(p.PaidAt) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []entity.AuditLog
	err  error
}

func (r *fakeAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *l)
	return nil
}

func (r *fakeAuditRepo) List(context.Context, repository.AuditLogFilter, *pagination.Params) ([]entity.AuditLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]entity.User{}}
	for _, u := range users {
		newID(&u.ID)
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	newID(&u.ID)
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) find(match func(entity.User) bool) *entity.User {
	for _, u := range r.users {
		if match(u) {
			cp := u
			return &cp
		}
	}
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Phone != nil && *u.Phone == phone }), nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(context.Context) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]entity.RecoveryToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[uuid.UUID]entity.RecoveryToken{}}
}

func (r *fakeTokenRepo) Create(_ context.Context, t *entity.RecoveryToken) error {
	newID(&t.ID)
	r.tokens[t.ID] = *t
	return nil
}

func (r *fakeTokenRepo) GetByTokenHash(_ context.Context, hash string) (*entity.RecoveryToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) MarkUsed(_ context.Context, id uuid.UUID, at time.Time) error {
	t, ok := r.tokens[id]
	if !ok || t.UsedAt != nil {
		return errStore
	}
	t.UsedAt = &at
	r.tokens[id] = t
	return nil
}

func (r *fakeTokenRepo) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, t := range r.tokens {
		if !now.Before(t.ExpiresAt) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

type fakeIdempotencyRepo struct {
	purged int64
}

func (r *fakeIdempotencyRepo) Get(context.Context, uuid.UUID, string) (*entity.IdempotencyKey, error) {
	return nil, nil
}

func (r *fakeIdempotencyRepo) Create(context.Context, *entity.IdempotencyKey) error { return nil }

func (r *fakeIdempotencyRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return r.purged, nil
}

// helpers

func day(s string) period.Date {
	t, err := period.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return period.NewDate(t)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}
