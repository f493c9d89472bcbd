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
	"github.com/shopspring/decimal"
)

// SettlementService reconciles cash owed against cash collected. After every
// change to a settlement's payments its settled amount is re-summed from the
// payment rows inside the same transaction, under a row lock.
type SettlementService struct {
	tx          repository.Transactor
	settlements repository.SettlementRepository
	payments    repository.SettlementPaymentRepository
	sales       repository.ReceptionistSaleRepository
	audit       *AuditService
	now         func() time.Time
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	tx repository.Transactor,
	settlements repository.SettlementRepository,
	payments repository.SettlementPaymentRepository,
	sales repository.ReceptionistSaleRepository,
	audit *AuditService,
) *SettlementService {
	return &SettlementService{
		tx:          tx,
		settlements: settlements,
		payments:    payments,
		sales:       sales,
		audit:       audit,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateSettlementInput opens a settlement. ExpectedAmount defaults to the
// receptionist sale's expected amount.
type CreateSettlementInput struct {
	Date                 period.Date      `json:"date"`
	ReceptionistSaleID   uuid.UUID        `json:"receptionistSaleId"`
	ExpectedAmount       *decimal.Decimal `json:"expectedAmount"`
	InitialSettledAmount decimal.Decimal  `json:"initialSettledAmount"`
	Notes                *string          `json:"notes"`
}

// Create opens the settlement of a receptionist sale. A non-zero initial
// amount is stored as the first payment so the sum invariant holds from the
// start.
func (s *SettlementService) Create(ctx context.Context, input *CreateSettlementInput, actor uuid.UUID) (*entity.Settlement, error) {
	var v apperror.Collector
	v.Check(input.ReceptionistSaleID != uuid.Nil, "receptionistSaleId", "is required")
	v.Check(!input.InitialSettledAmount.IsNegative(), "initialSettledAmount", "must not be negative")
	if input.ExpectedAmount != nil {
		v.Check(!input.ExpectedAmount.IsNegative(), "expectedAmount", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var settlement *entity.Settlement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.sales.GetByID(ctx, input.ReceptionistSaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Receptionist sale")
		}
		existing, err := s.settlements.GetByReceptionistSaleID(ctx, sale.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("A settlement already exists for this receptionist sale")
		}

		now := s.now()
		settlement = &entity.Settlement{
			Date:               input.Date,
			ReceptionistSaleID: sale.ID,
			ExpectedAmount:     sale.ExpectedAmount,
			SettledBy:          actor,
			Notes:              input.Notes,
		}
		if settlement.Date.IsZero() {
			settlement.Date = sale.Date
		}
		if input.ExpectedAmount != nil {
			settlement.ExpectedAmount = *input.ExpectedAmount
		}
		settlement.ApplySettled(decimal.Zero, now)
		if err := s.settlements.Create(ctx, settlement); err != nil {
			return err
		}

		if input.InitialSettledAmount.IsPositive() {
			payment := &entity.SettlementPayment{
				SettlementID: settlement.ID,
				Amount:       input.InitialSettledAmount,
				PaidBy:       actor,
				PaidAt:       now,
				Notes:        input.Notes,
			}
			if err := s.payments.Create(ctx, payment); err != nil {
				return err
			}
			return s.recompute(ctx, settlement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntitySettlement, settlement.ID, enum.AuditActionCreate, actor, nil)
	return settlement, nil
}

// GetByID returns the settlement with its payments
func (s *SettlementService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	settlement, err := s.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	payments, err := s.payments.ListBySettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	settlement.Payments = payments
	return settlement, nil
}

// List returns settlements matching filter
func (s *SettlementService) List(ctx context.Context, filter repository.SettlementFilter) ([]entity.Settlement, error) {
	return s.settlements.List(ctx, filter)
}

// UpdateSettlementInput is a partial update. Settled amounts are never set
// directly; they follow the payments.
type UpdateSettlementInput struct {
	Date           *period.Date     `json:"date"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount"`
	Notes          *string          `json:"notes"`
	Reason         *string          `json:"reason"`
}

// Update edits a settlement and re-derives its balance.
func (s *SettlementService) Update(ctx context.Context, id uuid.UUID, input *UpdateSettlementInput, actor uuid.UUID) (*entity.Settlement, error) {
	if input.ExpectedAmount != nil && input.ExpectedAmount.IsNegative() {
		return nil, apperror.NewFieldError("expectedAmount", "must not be negative")
	}

	var (
		settlement *entity.Settlement
		changes    Changes
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		settlement, err = s.lock(ctx, id)
		if err != nil {
			return err
		}

		if input.Date != nil {
			changes.Track("date", settlement.Date.String(), input.Date.String())
			settlement.Date = *input.Date
		}
		if input.ExpectedAmount != nil {
			changes.Track("expectedAmount", settlement.ExpectedAmount.StringFixed(2), input.ExpectedAmount.StringFixed(2))
			settlement.ExpectedAmount = *input.ExpectedAmount
		}
		if input.Notes != nil {
			changes.Track("notes", stringValue(settlement.Notes), *input.Notes)
			settlement.Notes = input.Notes
		}
		return s.recompute(ctx, settlement)
	})
	if err != nil {
		return nil, err
	}

	s.audit.RecordChanges(ctx, AuditEntitySettlement, id, changes, actor, input.Reason)
	return settlement, nil
}

// Delete removes a settlement together with its payments.
func (s *SettlementService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	settlement, err := s.settlements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if settlement == nil {
		return apperror.NewNotFoundError("Settlement")
	}
	if err := s.settlements.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntitySettlement, id, enum.AuditActionDelete, actor, nil)
	return nil
}

// RecordPaymentInput is one cash collection. PaidAt defaults to now.
type RecordPaymentInput struct {
	SettlementID uuid.UUID       `json:"settlementId"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       *time.Time      `json:"paidAt"`
	Notes        *string         `json:"notes"`
}

// PaymentResult is a recorded payment and the settlement it changed.
type PaymentResult struct {
	Payment    *entity.SettlementPayment `json:"payment"`
	Settlement *entity.Settlement        `json:"settlement"`
}

// RecordPayment inserts a payment and re-sums its settlement.
func (s *SettlementService) RecordPayment(ctx context.Context, input *RecordPaymentInput, actor uuid.UUID) (*PaymentResult, error) {
	var v apperror.Collector
	v.Check(input.SettlementID != uuid.Nil, "settlementId", "is required")
	v.Check(input.Amount.IsPositive(), "amount", "must be greater than zero")
	if err := v.Err(); err != nil {
		return nil, err
	}

	result := &PaymentResult{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		settlement, err := s.lock(ctx, input.SettlementID)
		if err != nil {
			return err
		}

		payment := &entity.SettlementPayment{
			SettlementID: settlement.ID,
			Amount:       input.Amount,
			PaidBy:       actor,
			PaidAt:       s.now(),
			Notes:        input.Notes,
		}
		if input.PaidAt != nil {
			payment.PaidAt = input.PaidAt.UTC()
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := s.recompute(ctx, settlement); err != nil {
			return err
		}

		result.Payment = payment
		result.Settlement = settlement
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntitySettlementPayment, result.Payment.ID, enum.AuditActionPayment, actor, nil)
	return result, nil
}

// DeletePayment removes a payment and re-sums its settlement.
func (s *SettlementService) DeletePayment(ctx context.Context, paymentID uuid.UUID, actor uuid.UUID) (*entity.Settlement, error) {
	var settlement *entity.Settlement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Settlement payment")
		}
		if settlement, err = s.lock(ctx, payment.SettlementID); err != nil {
			return err
		}
		if err := s.payments.Delete(ctx, paymentID); err != nil {
			return err
		}
		return s.recompute(ctx, settlement)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntitySettlementPayment, paymentID, enum.AuditActionDelete, actor, nil)
	return settlement, nil
}

// ListPayments returns the payments of one settlement, oldest first.
func (s *SettlementService) ListPayments(ctx context.Context, settlementID uuid.UUID) ([]entity.SettlementPayment, error) {
	settlement, err := s.settlements.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return s.payments.ListBySettlement(ctx, settlementID)
}

// ListAllPayments returns payments made within r.
func (s *SettlementService) ListAllPayments(ctx context.Context, r period.Range) ([]entity.SettlementPayment, error) {
	return s.payments.List(ctx, r)
}

// Receipt composes the printable view of a settlement.
func (s *SettlementService) Receipt(ctx context.Context, id uuid.UUID, businessName string) (*entity.SettlementReceipt, error) {
	settlement, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale, err := s.sales.GetByID(ctx, settlement.ReceptionistSaleID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.SettlementReceipt{
		BusinessName:     businessName,
		SettlementID:     settlement.ID,
		Date:             settlement.Date.String(),
		ExpectedAmount:   settlement.ExpectedAmount,
		SettledAmount:    settlement.SettledAmount,
		RemainingBalance: settlement.RemainingBalance,
		IsSettled:        settlement.IsSettled,
		Payments:         make([]entity.ReceiptPayment, 0, len(settlement.Payments)),
		PrintedAt:        s.now(),
	}
	if sale != nil {
		receipt.SaleType = sale.SaleType.String()
		receipt.DriverName = stringValue(sale.DriverName)
		receipt.TotalBags = sale.TotalBags
	}
	for _, p := range settlement.Payments {
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			PaidAt: p.PaidAt,
			Amount: p.Amount,
			Notes:  stringValue(p.Notes),
		})
	}
	return receipt, nil
}

func (s *SettlementService) lock(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	settlement, err := s.settlements.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return settlement, nil
}

// recompute re-sums the payments of settlement and saves the derived fields.
func (s *SettlementService) recompute(ctx context.Context, settlement *entity.Settlement) error {
	settled, err := s.payments.SumBySettlement(ctx, settlement.ID)
	if err != nil {
		return err
	}
	if settled.IsNegative() {
		return apperror.NewFieldError("settledAmount", "must not be negative")
	}
	settlement.ApplySettled(settled, s.now())
	return s.settlements.Update(ctx, settlement)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
