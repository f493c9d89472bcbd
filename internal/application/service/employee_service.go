package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeService handles payroll staff
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// EmployeeInput is the body of an employee create or update. FixedSalary is
// required unless the employee is paid on commission only.
type EmployeeInput struct {
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          *string             `json:"phone"`
	Role           enum.EmployeeRole   `json:"role"`
	SalaryType     enum.SalaryType     `json:"salaryType"`
	FixedSalary    decimal.NullDecimal `json:"fixedSalary"`
	CommissionRate decimal.NullDecimal `json:"commissionRate"`
}

func (in *EmployeeInput) validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var v apperror.Collector
	v.Check(strings.TrimSpace(in.Name) != "", "name", "is required")
	if _, err := mail.ParseAddress(in.Email); err != nil {
		v.Add("email", "must be a valid email address")
	}
	v.Check(strings.TrimSpace(string(in.Role)) != "", "role", "is required")
	v.Check(in.SalaryType.IsValid(), "salaryType", "must be one of fixed, commission, both")
	if in.SalaryType.HasFixed() {
		v.Check(in.FixedSalary.Valid, "fixedSalary", "is required for this salary type")
	}
	if in.FixedSalary.Valid {
		v.Check(!in.FixedSalary.Decimal.IsNegative(), "fixedSalary", "must not be negative")
	}
	if in.CommissionRate.Valid {
		v.Check(!in.CommissionRate.Decimal.IsNegative(), "commissionRate", "must not be negative")
	}
	return v.Err()
}

func (in *EmployeeInput) apply(e *entity.Employee) {
	e.Name = strings.TrimSpace(in.Name)
	e.Email = in.Email
	e.Phone = in.Phone
	e.Role = in.Role
	e.SalaryType = in.SalaryType
	e.FixedSalary = in.FixedSalary
	e.CommissionRate = in.CommissionRate
}

func (s *EmployeeService) Create(ctx context.Context, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	existing, err := s.employeeRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An employee with this email already exists")
	}

	employee := &entity.Employee{}
	input.apply(employee)
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, input *EmployeeInput) (*entity.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != employee.Email {
		other, err := s.employeeRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperror.NewConflictError("An employee with this email already exists")
		}
	}

	input.apply(employee)
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Delete removes an employee. Sales and entries keep their employee id.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}
