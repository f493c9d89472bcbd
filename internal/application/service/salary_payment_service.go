package service

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryPaymentService records salary disbursements
type SalaryPaymentService struct {
	paymentRepo  repository.SalaryPaymentRepository
	employeeRepo repository.EmployeeRepository
}

// NewSalaryPaymentService creates a new salary payment service
func NewSalaryPaymentService(paymentRepo repository.SalaryPaymentRepository, employeeRepo repository.EmployeeRepository) *SalaryPaymentService {
	return &SalaryPaymentService{paymentRepo: paymentRepo, employeeRepo: employeeRepo}
}

// SalaryPaymentInput is the body of a payment create or update. TotalAmount
// defaults to fixed plus commission.
type SalaryPaymentInput struct {
	EmployeeID       uuid.UUID           `json:"employeeId"`
	EmployeeName     string              `json:"employeeName"`
	FixedAmount      decimal.NullDecimal `json:"fixedAmount"`
	CommissionAmount decimal.NullDecimal `json:"commissionAmount"`
	TotalAmount      *decimal.Decimal    `json:"totalAmount"`
	Period           enum.SalaryPeriod   `json:"period"`
	PeriodStart      period.Date         `json:"periodStart"`
	PeriodEnd        period.Date         `json:"periodEnd"`
	PaidDate         period.Date         `json:"paidDate"`
	Notes            *string             `json:"notes"`
}

func (in *SalaryPaymentInput) validate() error {
	var v apperror.Collector
	v.Check(in.EmployeeID != uuid.Nil, "employeeId", "is required")
	v.Check(in.Period.IsValid(), "period", "must be one of daily, weekly, monthly, first_half, second_half")
	v.Check(!in.PeriodStart.IsZero(), "periodStart", "is required")
	v.Check(!in.PeriodEnd.IsZero(), "periodEnd", "is required")
	v.Check(!in.PaidDate.IsZero(), "paidDate", "is required")
	if !in.PeriodStart.IsZero() && !in.PeriodEnd.IsZero() {
		v.Check(!in.PeriodEnd.Before(in.PeriodStart.Time), "periodEnd", "must not be before periodStart")
	}
	if in.FixedAmount.Valid {
		v.Check(!in.FixedAmount.Decimal.IsNegative(), "fixedAmount", "must not be negative")
	}
	if in.CommissionAmount.Valid {
		v.Check(!in.CommissionAmount.Decimal.IsNegative(), "commissionAmount", "must not be negative")
	}
	if in.TotalAmount != nil {
		v.Check(in.TotalAmount.IsPositive(), "totalAmount", "must be greater than zero")
	} else {
		v.Check(in.total().IsPositive(), "totalAmount", "must be greater than zero")
	}
	return v.Err()
}

func (in *SalaryPaymentInput) total() decimal.Decimal {
	if in.TotalAmount != nil {
		return *in.TotalAmount
	}
	total := decimal.Zero
	if in.FixedAmount.Valid {
		total = total.Add(in.FixedAmount.Decimal)
	}
	if in.CommissionAmount.Valid {
		total = total.Add(in.CommissionAmount.Decimal)
	}
	return total
}

func (s *SalaryPaymentService) build(ctx context.Context, input *SalaryPaymentInput, p *entity.SalaryPayment) error {
	if err := input.validate(); err != nil {
		return err
	}
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Employee")
	}

	p.EmployeeID = employee.ID
	p.EmployeeName = input.EmployeeName
	if p.EmployeeName == "" {
		p.EmployeeName = employee.Name
	}
	p.FixedAmount = input.FixedAmount
	p.CommissionAmount = input.CommissionAmount
	p.TotalAmount = input.total()
	p.Period = input.Period
	p.PeriodStart = input.PeriodStart
	p.PeriodEnd = input.PeriodEnd
	p.PaidDate = input.PaidDate
	p.Notes = input.Notes
	return nil
}

func (s *SalaryPaymentService) Create(ctx context.Context, input *SalaryPaymentInput) (*entity.SalaryPayment, error) {
	payment := &entity.SalaryPayment{}
	if err := s.build(ctx, input, payment); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *SalaryPaymentService) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Salary payment")
	}
	return payment, nil
}

func (s *SalaryPaymentService) List(ctx context.Context, filter repository.SalaryPaymentFilter) ([]entity.SalaryPayment, error) {
	return s.paymentRepo.List(ctx, filter)
}

func (s *SalaryPaymentService) Update(ctx context.Context, id uuid.UUID, input *SalaryPaymentInput) (*entity.SalaryPayment, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.build(ctx, input, payment); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *SalaryPaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}
