package service

import (
	"context"
	"log"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/shopspring/decimal"
)

// FinancialReport is profit and loss for one date range.
//
// MaterialCosts is cash spent on materials in the range and is shown as the
// materials expense line. MaterialCostAllocated is the per-bag material cost
// of the bags sold and is what enters TotalExpenses and Profit.
type FinancialReport struct {
	Period                period.Kind     `json:"period"`
	StartDate             string          `json:"startDate"`
	EndDate               string          `json:"endDate"`
	TotalRevenue          decimal.Decimal `json:"totalRevenue"`
	TotalExpenses         decimal.Decimal `json:"totalExpenses"`
	TotalSalaries         decimal.Decimal `json:"totalSalaries"`
	MaterialCosts         decimal.Decimal `json:"materialCosts"`
	MaterialCostAllocated decimal.Decimal `json:"materialCostAllocated"`
	FuelCosts             decimal.Decimal `json:"fuelCosts"`
	DriverPayments        decimal.Decimal `json:"driverPayments"`
	OtherExpenses         decimal.Decimal `json:"otherExpenses"`
	Profit                decimal.Decimal `json:"profit"`
	ProfitMargin          decimal.Decimal `json:"profitMargin"`
	TotalBagsSold         int64           `json:"totalBagsSold"`
	Partial               bool            `json:"partial"`
}

// TrendPoint is one period of a trend series.
type TrendPoint struct {
	PeriodLabel string          `json:"periodLabel"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Profit      decimal.Decimal `json:"profit"`
	Partial     bool            `json:"partial,omitempty"`
}

// DefaultTrendLength is the number of periods in a trend series.
const DefaultTrendLength = 7

// ReportService builds financial reports
type ReportService struct {
	saleRepo     repository.SaleRepository
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.MaterialPurchaseRepository
	salaryRepo   repository.SalaryPaymentRepository
	settings     *SettingsService
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	purchaseRepo repository.MaterialPurchaseRepository,
	salaryRepo repository.SalaryPaymentRepository,
	settings *SettingsService,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		expenseRepo:  expenseRepo,
		purchaseRepo: purchaseRepo,
		salaryRepo:   salaryRepo,
		settings:     settings,
	}
}

// Generate builds the report for the inclusive range r. A failed read yields
// a zero report flagged Partial; the error is logged, not returned.
func (s *ReportService) Generate(ctx context.Context, kind period.Kind, r period.Range) *FinancialReport {
	report, err := s.generate(ctx, kind, r)
	if err != nil {
		log.Printf("financial report %s %s: %v", kind, r, err)
		return zeroReport(kind, r)
	}
	return report
}

func (s *ReportService) generate(ctx context.Context, kind period.Kind, r period.Range) (*FinancialReport, error) {
	sales, err := s.saleRepo.List(ctx, repository.SaleFilter{Range: r})
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.List(ctx, repository.ExpenseFilter{Range: r})
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.List(ctx, repository.MaterialPurchaseFilter{Range: r})
	if err != nil {
		return nil, err
	}
	salaries, err := s.salaryRepo.List(ctx, repository.SalaryPaymentFilter{Range: r})
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	report := zeroReport(kind, r)
	report.Partial = false

	for _, sale := range sales {
		report.TotalRevenue = report.TotalRevenue.Add(sale.TotalAmount)
		report.TotalBagsSold += int64(sale.BagsSold)
	}

	for _, e := range expenses {
		switch {
		case e.Type.IsFuel():
			report.FuelCosts = report.FuelCosts.Add(e.Amount)
		case e.Type.IsDriverPayment():
			report.DriverPayments = report.DriverPayments.Add(e.Amount)
		default:
			report.OtherExpenses = report.OtherExpenses.Add(e.Amount)
		}
	}

	for _, p := range purchases {
		report.MaterialCosts = report.MaterialCosts.Add(p.Cost)
	}

	for _, p := range salaries {
		report.TotalSalaries = report.TotalSalaries.Add(p.TotalAmount)
	}

	report.MaterialCostAllocated = settings.MaterialCostPerBag().Mul(decimal.NewFromInt(report.TotalBagsSold))

	report.TotalExpenses = report.FuelCosts.
		Add(report.DriverPayments).
		Add(report.OtherExpenses).
		Add(report.MaterialCostAllocated).
		Add(report.TotalSalaries)

	report.Profit = report.TotalRevenue.Sub(report.TotalExpenses)
	if report.TotalRevenue.IsPositive() {
		report.ProfitMargin = report.Profit.Div(report.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return report, nil
}

// Trend generates n consecutive reports of kind ending with the period that
// contains anchor, oldest first.
func (s *ReportService) Trend(ctx context.Context, kind period.Kind, anchor time.Time, n int) []TrendPoint {
	if kind == period.Custom {
		kind = period.Daily
	}
	if n <= 0 {
		n = DefaultTrendLength
	}

	ranges := period.Trailing(kind, anchor, n)
	points := make([]TrendPoint, 0, len(ranges))
	for _, r := range ranges {
		report := s.Generate(ctx, kind, r)
		points = append(points, TrendPoint{
			PeriodLabel: period.Label(kind, r),
			StartDate:   report.StartDate,
			EndDate:     report.EndDate,
			Revenue:     report.TotalRevenue,
			Expenses:    report.TotalExpenses,
			Profit:      report.Profit,
			Partial:     report.Partial,
		})
	}
	return points
}

func zeroReport(kind period.Kind, r period.Range) *FinancialReport {
	return &FinancialReport{
		Period:                kind,
		StartDate:             formatBound(r.From),
		EndDate:               formatBound(r.To),
		TotalRevenue:          decimal.Zero,
		TotalExpenses:         decimal.Zero,
		TotalSalaries:         decimal.Zero,
		MaterialCosts:         decimal.Zero,
		MaterialCostAllocated: decimal.Zero,
		FuelCosts:             decimal.Zero,
		DriverPayments:        decimal.Zero,
		OtherExpenses:         decimal.Zero,
		Profit:                decimal.Zero,
		ProfitMargin:          decimal.Zero,
		Partial:               true,
	}
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(period.DateLayout)
}
