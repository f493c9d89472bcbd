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

// SalesCommission is a driver's commission with the sales it came from.
type SalesCommission struct {
	EmployeeID uuid.UUID       `json:"employeeId"`
	TotalBags  int64           `json:"totalBags"`
	Commission decimal.Decimal `json:"commission"`
	Sales      []entity.Sale   `json:"sales"`
}

// PackerCommission is a packer's commission with the entries it came from.
type PackerCommission struct {
	EmployeeID uuid.UUID            `json:"employeeId"`
	TotalBags  int64                `json:"totalBags"`
	Commission decimal.Decimal      `json:"commission"`
	Entries    []entity.PackerEntry `json:"entries"`
}

// CommissionSummaryRow is one employee's line in a batch summary. Error is
// set and the amounts are zero when that employee could not be computed.
type CommissionSummaryRow struct {
	EmployeeID     uuid.UUID         `json:"employeeId"`
	EmployeeName   string            `json:"employeeName"`
	Role           enum.EmployeeRole `json:"role"`
	Source         string            `json:"source"`
	CommissionRate decimal.Decimal   `json:"commissionRate"`
	TotalBags      int64             `json:"totalBags"`
	Commission     decimal.Decimal   `json:"commission"`
	Error          string            `json:"error,omitempty"`
}

// SalaryProjection breaks down an estimated salary for one period.
type SalaryProjection struct {
	EmployeeID       uuid.UUID         `json:"employeeId"`
	Period           enum.SalaryPeriod `json:"period"`
	BagsAttributed   int64             `json:"bagsAttributed"`
	FixedAmount      decimal.Decimal   `json:"fixedAmount"`
	CommissionAmount decimal.Decimal   `json:"commissionAmount"`
	Total            decimal.Decimal   `json:"total"`
}

const (
	commissionSourceSales  = "sales"
	commissionSourcePacker = "packer_entries"
)

// CommissionService computes commissions and salary projections
type CommissionService struct {
	employeeRepo repository.EmployeeRepository
	saleRepo     repository.SaleRepository
	packerRepo   repository.PackerEntryRepository
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	employeeRepo repository.EmployeeRepository,
	saleRepo repository.SaleRepository,
	packerRepo repository.PackerEntryRepository,
) *CommissionService {
	return &CommissionService{
		employeeRepo: employeeRepo,
		saleRepo:     saleRepo,
		packerRepo:   packerRepo,
	}
}

func (s *CommissionService) employee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return emp, nil
}

// FromSales computes commission over sales attributed to the employee by
// foreign key. Sales without an employee never count, whatever the driver name.
func (s *CommissionService) FromSales(ctx context.Context, employeeID uuid.UUID, r period.Range) (*SalesCommission, error) {
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.salesCommission(ctx, emp, r)
}

func (s *CommissionService) salesCommission(ctx context.Context, emp *entity.Employee, r period.Range) (*SalesCommission, error) {
	sales, err := s.saleRepo.List(ctx, repository.SaleFilter{Range: r, EmployeeID: &emp.ID})
	if err != nil {
		return nil, err
	}

	result := &SalesCommission{EmployeeID: emp.ID, Sales: make([]entity.Sale, 0, len(sales))}
	for _, sale := range sales {
		if sale.EmployeeID == nil || *sale.EmployeeID != emp.ID {
			continue
		}
		result.TotalBags += int64(sale.BagsSold)
		result.Sales = append(result.Sales, sale)
	}
	result.Commission = commissionFor(emp, result.TotalBags)
	return result, nil
}

// FromPackerEntries computes commission over the employee's packing entries.
func (s *CommissionService) FromPackerEntries(ctx context.Context, employeeID uuid.UUID, r period.Range) (*PackerCommission, error) {
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.packerCommission(ctx, emp, r)
}

func (s *CommissionService) packerCommission(ctx context.Context, emp *entity.Employee, r period.Range) (*PackerCommission, error) {
	entries, err := s.packerRepo.List(ctx, repository.PackerEntryFilter{Range: r, EmployeeID: &emp.ID})
	if err != nil {
		return nil, err
	}

	result := &PackerCommission{EmployeeID: emp.ID, Entries: make([]entity.PackerEntry, 0, len(entries))}
	for _, entry := range entries {
		if entry.EmployeeID == nil || *entry.EmployeeID != emp.ID {
			continue
		}
		result.TotalBags += int64(entry.BagsPacked)
		result.Entries = append(result.Entries, entry)
	}
	result.Commission = commissionFor(emp, result.TotalBags)
	return result, nil
}

// bagsFor returns the bags attributed to emp from the source matching its role.
func (s *CommissionService) bagsFor(ctx context.Context, emp *entity.Employee, r period.Range) (int64, string, error) {
	if emp.Role.IsPacker() {
		pc, err := s.packerCommission(ctx, emp, r)
		if err != nil {
			return 0, commissionSourcePacker, err
		}
		return pc.TotalBags, commissionSourcePacker, nil
	}
	sc, err := s.salesCommission(ctx, emp, r)
	if err != nil {
		return 0, commissionSourceSales, err
	}
	return sc.TotalBags, commissionSourceSales, nil
}

// Summary computes commission for every commission-earning employee. A
// failure for one employee becomes a zero row carrying the error.
func (s *CommissionService) Summary(ctx context.Context, r period.Range) ([]CommissionSummaryRow, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]CommissionSummaryRow, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		if !emp.SalaryType.HasCommission() {
			continue
		}

		row := CommissionSummaryRow{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.Name,
			Role:           emp.Role,
			CommissionRate: emp.EffectiveCommissionRate(),
			Commission:     decimal.Zero,
		}

		bags, source, err := s.bagsFor(ctx, emp, r)
		row.Source = source
		if err != nil {
			row.Error = err.Error()
			rows = append(rows, row)
			continue
		}
		row.TotalBags = bags
		row.Commission = commissionFor(emp, bags)
		rows = append(rows, row)
	}
	return rows, nil
}

// ProjectSalary estimates what the employee earns for one salary period,
// counting bags attributed over r.
func (s *CommissionService) ProjectSalary(ctx context.Context, employeeID uuid.UUID, p enum.SalaryPeriod, r period.Range) (*SalaryProjection, error) {
	if !p.IsValid() {
		return nil, apperror.NewFieldError("period", "must be one of daily, weekly, monthly, first_half, second_half")
	}
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var bags int64
	if emp.SalaryType.HasCommission() {
		if bags, _, err = s.bagsFor(ctx, emp, r); err != nil {
			return nil, err
		}
	}

	return &SalaryProjection{
		EmployeeID:       emp.ID,
		Period:           p,
		BagsAttributed:   bags,
		FixedAmount:      fixedSalaryFor(emp, p),
		CommissionAmount: commissionFor(emp, bags),
		Total:            CalculateEmployeeSalary(emp, bags, p),
	}, nil
}

// CalculateEmployeeSalary projects pay for one period from bags sold. It is
// an estimate and writes nothing.
func CalculateEmployeeSalary(emp *entity.Employee, bagsSold int64, p enum.SalaryPeriod) decimal.Decimal {
	return fixedSalaryFor(emp, p).Add(commissionFor(emp, bagsSold))
}

// commissionFor is bags × the flat per-bag rate.
func commissionFor(emp *entity.Employee, bags int64) decimal.Decimal {
	return emp.EffectiveCommissionRate().Mul(decimal.NewFromInt(bags))
}

// fixedSalaryFor prorates the monthly fixed salary to p, rounded to cents.
func fixedSalaryFor(emp *entity.Employee, p enum.SalaryPeriod) decimal.Decimal {
	monthly := emp.EffectiveFixedSalary()
	switch p {
	case enum.SalaryPeriodFirstHalf, enum.SalaryPeriodSecondHalf:
		return monthly.Div(decimal.NewFromInt(2)).Round(2)
	case enum.SalaryPeriodDaily:
		return monthly.Div(decimal.NewFromInt(30)).Round(2)
	case enum.SalaryPeriodWeekly:
		return monthly.Div(decimal.NewFromInt(4)).Round(2)
	default:
		return monthly
	}
}
