package service

import (
	"context"
	"fmt"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense-related operations
type ExpenseService struct {
	tx          repository.Transactor
	expenseRepo repository.ExpenseRepository
	audit       *AuditService
}

// NewExpenseService creates a new expense service
func NewExpenseService(tx repository.Transactor, expenseRepo repository.ExpenseRepository, audit *AuditService) *ExpenseService {
	return &ExpenseService{tx: tx, expenseRepo: expenseRepo, audit: audit}
}

// ExpenseInput is the body of an expense create or update. Legacy type
// names are accepted and stored under their current name.
type ExpenseInput struct {
	Type        enum.ExpenseType `json:"type"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        period.Date      `json:"date"`
	Reference   *string          `json:"reference"`
	Reason      *string          `json:"reason,omitempty"`
}

func (in *ExpenseInput) check(v *apperror.Collector, prefix string) {
	v.Check(in.Type.IsValid(), prefix+"type", "must be one of fuel, driver_fuel, other")
	v.Check(in.Description != "", prefix+"description", "is required")
	v.Check(in.Amount.IsPositive(), prefix+"amount", "must be greater than zero")
	v.Check(!in.Date.IsZero(), prefix+"date", "is required")
}

func (in *ExpenseInput) apply(e *entity.Expense) {
	e.Type = in.Type.Normalize()
	e.Description = in.Description
	e.Amount = in.Amount
	e.Date = in.Date
	e.Reference = in.Reference
}

// Create records a single expense
func (s *ExpenseService) Create(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	var v apperror.Collector
	input.check(&v, "")
	if err := v.Err(); err != nil {
		return nil, err
	}
	expense := &entity.Expense{}
	input.apply(expense)
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// CreateBatch records several expenses at once. Every item is validated
// first and all are written in one transaction, so either all are stored or
// none is.
func (s *ExpenseService) CreateBatch(ctx context.Context, inputs []ExpenseInput) ([]entity.Expense, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewFieldError("expenses", "must contain at least one expense")
	}

	var v apperror.Collector
	for i := range inputs {
		inputs[i].check(&v, fmt.Sprintf("expenses[%d].", i))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	expenses := make([]entity.Expense, len(inputs))
	for i := range inputs {
		inputs[i].apply(&expenses[i])
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.expenseRepo.CreateBatch(ctx, expenses)
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// List returns expenses matching filter. A legacy type filter matches both
// names.
func (s *ExpenseService) List(ctx context.Context, filter repository.ExpenseFilter) ([]entity.Expense, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, apperror.NewFieldError("type", "must be one of fuel, driver_fuel, other")
	}
	return s.expenseRepo.List(ctx, filter)
}

// Update replaces an expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, input *ExpenseInput, actor uuid.UUID) (*entity.Expense, error) {
	var v apperror.Collector
	input.check(&v, "")
	if err := v.Err(); err != nil {
		return nil, err
	}
	expense, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes Changes
	before := *expense
	input.apply(expense)
	changes.Track("type", before.Type.String(), expense.Type.String())
	changes.Track("amount", before.Amount.StringFixed(2), expense.Amount.StringFixed(2))
	changes.Track("date", before.Date.String(), expense.Date.String())
	changes.Track("description", before.Description, expense.Description)

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	s.audit.RecordChanges(ctx, AuditEntityExpense, id, changes, actor, input.Reason)
	return expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntityExpense, id, enum.AuditActionDelete, actor, nil)
	return nil
}
