package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
)

func validExpense(amount string) ExpenseInput {
	return ExpenseInput{
		Type:        enum.ExpenseTypeFuel,
		Description: "generator diesel",
		Amount:      dec(amount),
		Date:        day("2026-10-16"),
	}
}

func TestExpenseBatchValidatesEveryItem(t *testing.T) {
	repo := &fakeExpenseRepo{}
	tx := &fakeTx{}
	svc := NewExpenseService(tx, repo, NewAuditService(&fakeAuditRepo{}))

	bad := validExpense("0")
	_, err := svc.CreateBatch(context.Background(), []ExpenseInput{validExpense("100"), bad, validExpense("50")})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "expenses[1].amount" {
		t.Fatalf("unexpected field errors %+v", appErr.Errors)
	}
	if len(repo.expenses) != 0 || tx.calls != 0 {
		t.Fatalf("nothing may be written when any item is invalid")
	}
}

func TestExpenseBatchIsAtomic(t *testing.T) {
	repo := &fakeExpenseRepo{failAt: 2}
	svc := NewExpenseService(&fakeTx{}, repo, NewAuditService(&fakeAuditRepo{}))

	_, err := svc.CreateBatch(context.Background(), []ExpenseInput{validExpense("100"), validExpense("50")})
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(repo.expenses) != 0 {
		t.Fatalf("expected no rows after a failed batch, got %d", len(repo.expenses))
	}

	repo.failAt = 0
	created, err := svc.CreateBatch(context.Background(), []ExpenseInput{validExpense("100"), validExpense("50")})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if len(created) != 2 || len(repo.expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d/%d", len(created), len(repo.expenses))
	}
}

func TestExpenseBatchRejectsEmpty(t *testing.T) {
	svc := NewExpenseService(&fakeTx{}, &fakeExpenseRepo{}, nil)
	_, err := svc.CreateBatch(context.Background(), nil)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestExpenseLegacyTypeIsNormalized(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewExpenseService(&fakeTx{}, repo, nil)
	ctx := context.Background()

	input := validExpense("300")
	input.Type = enum.ExpenseTypeGeneratorFuel
	expense, err := svc.Create(ctx, &input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if expense.Type != enum.ExpenseTypeFuel {
		t.Fatalf("expected fuel, got %s", expense.Type)
	}

	list, err := svc.List(ctx, repository.ExpenseFilter{Type: enum.ExpenseTypeGeneratorFuel})
	if err != nil || len(list) != 1 {
		t.Fatalf("legacy filter should match, got %d (%v)", len(list), err)
	}

	_, err = svc.List(ctx, repository.ExpenseFilter{Type: "electricity"})
	assertStatus(t, err, http.StatusBadRequest)

	input.Type = "electricity"
	_, err = svc.Create(ctx, &input)
	assertStatus(t, err, http.StatusBadRequest)
}
