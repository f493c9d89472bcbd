package service

import (
	"context"
	"testing"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
)

type reportFixture struct {
	sales     *fakeSaleRepo
	expenses  *fakeExpenseRepo
	purchases *fakePurchaseRepo
	salaries  *fakeSalaryRepo
	svc       *ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		sales:     &fakeSaleRepo{},
		expenses:  &fakeExpenseRepo{},
		purchases: &fakePurchaseRepo{},
		salaries:  &fakeSalaryRepo{},
	}
	f.svc = NewReportService(f.sales, f.expenses, f.purchases, f.salaries, newSettingsService(nil))
	return f
}

func singleDay(s string) period.Range {
	d := day(s).Time
	return period.NewRange(d, d)
}

func TestReportScenario(t *testing.T) {
	f := newReportFixture()
	f.sales.sales = []entity.Sale{
		{DriverName: "Musa", BagsSold: 100, PricePerBag: dec("170"), TotalAmount: dec("17000"), Date: day("2026-10-05")},
		{DriverName: "Ade", BagsSold: 50, PricePerBag: dec("170"), TotalAmount: dec("8500"), Date: day("2026-10-05")},
	}
	f.expenses.expenses = []entity.Expense{
		{Type: enum.ExpenseTypeFuel, Description: "generator", Amount: dec("5000"), Date: day("2026-10-05")},
		{Type: enum.ExpenseTypeDriverFuel, Description: "van", Amount: dec("2000"), Date: day("2026-10-05")},
	}
	f.salaries.payments = []entity.SalaryPayment{
		{EmployeeName: "Ada", TotalAmount: dec("3000"), PaidDate: day("2026-10-05")},
	}
	f.purchases.purchases = []entity.MaterialPurchase{
		{Type: enum.MaterialTypeSachetRoll, Quantity: 1, Cost: dec("31000"), Date: day("2026-10-05")},
	}

	report := f.svc.Generate(context.Background(), period.Daily, singleDay("2026-10-05"))

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"totalRevenue", report.TotalRevenue.String(), "25500"},
		{"materialCostAllocated", report.MaterialCostAllocated.String(), "11833.5"},
		{"materialCosts", report.MaterialCosts.String(), "31000"},
		{"fuelCosts", report.FuelCosts.String(), "5000"},
		{"driverPayments", report.DriverPayments.String(), "2000"},
		{"otherExpenses", report.OtherExpenses.String(), "0"},
		{"totalSalaries", report.TotalSalaries.String(), "3000"},
		{"totalExpenses", report.TotalExpenses.String(), "21833.5"},
		{"profit", report.Profit.String(), "3666.5"},
		{"profitMargin", report.ProfitMargin.String(), "14.38"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
	if report.TotalBagsSold != 150 || report.Partial {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.StartDate != "2026-10-05" || report.EndDate != "2026-10-05" {
		t.Fatalf("unexpected bounds %s..%s", report.StartDate, report.EndDate)
	}
}

func TestReportLegacyExpenseTypes(t *testing.T) {
	f := newReportFixture()
	f.expenses.expenses = []entity.Expense{
		{Type: enum.ExpenseTypeGeneratorFuel, Amount: dec("100"), Date: day("2026-10-05")},
		{Type: enum.ExpenseTypeDriverPayment, Amount: dec("40"), Date: day("2026-10-05")},
		{Type: enum.ExpenseTypeOther, Amount: dec("7"), Date: day("2026-10-05")},
	}

	report := f.svc.Generate(context.Background(), period.Daily, singleDay("2026-10-05"))
	if !report.FuelCosts.Equal(dec("100")) || !report.DriverPayments.Equal(dec("40")) || !report.OtherExpenses.Equal(dec("7")) {
		t.Fatalf("legacy types misclassified: %+v", report)
	}
	if !report.ProfitMargin.IsZero() {
		t.Fatalf("margin must be zero without revenue, got %s", report.ProfitMargin)
	}
}

func TestReportIsAdditiveOverDays(t *testing.T) {
	f := newReportFixture()
	f.sales.sales = []entity.Sale{
		{BagsSold: 120, TotalAmount: dec("30000"), Date: day("2026-10-05")},
		{BagsSold: 33, TotalAmount: dec("8250"), Date: day("2026-10-06")},
	}
	f.expenses.expenses = []entity.Expense{
		{Type: enum.ExpenseTypeFuel, Amount: dec("1500"), Date: day("2026-10-05")},
		{Type: enum.ExpenseTypeOther, Amount: dec("250.75"), Date: day("2026-10-06")},
	}
	ctx := context.Background()

	d1 := f.svc.Generate(ctx, period.Custom, singleDay("2026-10-05"))
	d2 := f.svc.Generate(ctx, period.Custom, singleDay("2026-10-06"))
	both := f.svc.Generate(ctx, period.Custom, period.NewRange(day("2026-10-05").Time, day("2026-10-06").Time))

	if !d1.TotalRevenue.Add(d2.TotalRevenue).Equal(both.TotalRevenue) {
		t.Fatalf("revenue not additive: %s + %s != %s", d1.TotalRevenue, d2.TotalRevenue, both.TotalRevenue)
	}
	if !d1.TotalExpenses.Add(d2.TotalExpenses).Equal(both.TotalExpenses) {
		t.Fatalf("expenses not additive: %s + %s != %s", d1.TotalExpenses, d2.TotalExpenses, both.TotalExpenses)
	}
}

func TestReportFallsBackToZero(t *testing.T) {
	f := newReportFixture()
	f.sales.sales = []entity.Sale{{BagsSold: 10, TotalAmount: dec("2500"), Date: day("2026-10-05")}}
	f.expenses.err = errStore

	report := f.svc.Generate(context.Background(), period.Daily, singleDay("2026-10-05"))
	if !report.Partial {
		t.Fatalf("expected partial report")
	}
	if !report.TotalRevenue.IsZero() || !report.Profit.IsZero() || report.TotalBagsSold != 0 {
		t.Fatalf("expected zeroed report, got %+v", report)
	}
	if report.StartDate != "2026-10-05" {
		t.Fatalf("fallback must keep the requested window, got %s", report.StartDate)
	}
}

func TestReportTrend(t *testing.T) {
	f := newReportFixture()
	f.sales.sales = []entity.Sale{
		{BagsSold: 10, TotalAmount: dec("2500"), Date: day("2026-10-10")},
		{BagsSold: 4, TotalAmount: dec("1000"), Date: day("2026-10-16")},
	}

	points := f.svc.Trend(context.Background(), period.Daily, day("2026-10-16").Time, 7)
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].StartDate != "2026-10-10" || points[6].StartDate != "2026-10-16" {
		t.Fatalf("points not ordered oldest first: %s .. %s", points[0].StartDate, points[6].StartDate)
	}
	if !points[0].Revenue.Equal(dec("2500")) || !points[6].Revenue.Equal(dec("1000")) {
		t.Fatalf("unexpected revenue %s / %s", points[0].Revenue, points[6].Revenue)
	}
	if points[6].PeriodLabel != "Oct 16" {
		t.Fatalf("unexpected label %q", points[6].PeriodLabel)
	}
}
