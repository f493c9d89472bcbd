package service

import (
	"context"
	"testing"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
)

func commissionFixture() (*CommissionService, *fakeSaleRepo, entity.Employee, entity.Employee) {
	driver := entity.Employee{
		ID:             uuid.New(),
		Name:           "Musa",
		Email:          "musa@example.com",
		Role:           enum.EmployeeRoleDriver,
		SalaryType:     enum.SalaryTypeCommission,
		CommissionRate: nullDec("15"),
	}
	packer := entity.Employee{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		Role:           enum.EmployeeRole("packer"),
		SalaryType:     enum.SalaryTypeBoth,
		FixedSalary:    nullDec("30000"),
		CommissionRate: nullDec("2"),
	}

	sales := &fakeSaleRepo{sales: []entity.Sale{
		{DriverName: "Musa", EmployeeID: &driver.ID, BagsSold: 50, PricePerBag: dec("250"), Date: day("2026-10-01")},
		{DriverName: "Musa", EmployeeID: &driver.ID, BagsSold: 30, PricePerBag: dec("250"), Date: day("2026-10-02")},
		{DriverName: "Musa", BagsSold: 999, PricePerBag: dec("250"), Date: day("2026-10-02")},
	}}
	packers := &fakePackerRepo{entries: []entity.PackerEntry{
		{PackerName: "Ada", EmployeeID: &packer.ID, BagsPacked: 400, Date: day("2026-10-01")},
		{PackerName: "Ada", BagsPacked: 1000, Date: day("2026-10-01")},
	}}
	employees := &fakeEmployeeRepo{employees: []entity.Employee{driver, packer}}

	return NewCommissionService(employees, sales, packers), sales, driver, packer
}

func TestCommissionFromSales(t *testing.T) {
	svc, _, driver, _ := commissionFixture()

	got, err := svc.FromSales(context.Background(), driver.ID, period.Range{})
	if err != nil {
		t.Fatalf("FromSales: %v", err)
	}
	if got.TotalBags != 80 {
		t.Fatalf("expected 80 bags, got %d", got.TotalBags)
	}
	if !got.Commission.Equal(dec("1200")) {
		t.Fatalf("expected commission 1200, got %s", got.Commission)
	}
	if len(got.Sales) != 2 {
		t.Fatalf("sales without an employee id must not count, got %d", len(got.Sales))
	}
}

func TestCommissionIsAdditiveOverDisjointWindows(t *testing.T) {
	svc, _, driver, _ := commissionFixture()
	ctx := context.Background()

	first, _ := svc.FromSales(ctx, driver.ID, period.NewRange(day("2026-10-01").Time, day("2026-10-01").Time))
	second, _ := svc.FromSales(ctx, driver.ID, period.NewRange(day("2026-10-02").Time, day("2026-10-02").Time))
	both, _ := svc.FromSales(ctx, driver.ID, period.NewRange(day("2026-10-01").Time, day("2026-10-02").Time))

	if !first.Commission.Add(second.Commission).Equal(both.Commission) {
		t.Fatalf("%s + %s != %s", first.Commission, second.Commission, both.Commission)
	}
}

func TestCommissionUnknownEmployee(t *testing.T) {
	svc, _, _, _ := commissionFixture()
	if _, err := svc.FromSales(context.Background(), uuid.New(), period.Range{}); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestCommissionSummaryUsesRoleSource(t *testing.T) {
	svc, _, driver, packer := commissionFixture()

	rows, err := svc.Summary(context.Background(), period.Range{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		switch row.EmployeeID {
		case driver.ID:
			if row.Source != "sales" || !row.Commission.Equal(dec("1200")) {
				t.Fatalf("unexpected driver row %+v", row)
			}
		case packer.ID:
			if row.Source != "packer_entries" || row.TotalBags != 400 || !row.Commission.Equal(dec("800")) {
				t.Fatalf("unexpected packer row %+v", row)
			}
		}
	}
}

func TestCommissionSummaryIsolatesFailures(t *testing.T) {
	svc, sales, driver, packer := commissionFixture()
	sales.err = errStore

	rows, err := svc.Summary(context.Background(), period.Range{})
	if err != nil {
		t.Fatalf("one failing employee must not abort the batch: %v", err)
	}
	for _, row := range rows {
		if row.EmployeeID == driver.ID && (row.Error == "" || !row.Commission.IsZero()) {
			t.Fatalf("expected zero row with error, got %+v", row)
		}
		if row.EmployeeID == packer.ID && row.Error != "" {
			t.Fatalf("packer row should be unaffected, got %+v", row)
		}
	}
}

func TestCalculateEmployeeSalary(t *testing.T) {
	emp := &entity.Employee{
		SalaryType:     enum.SalaryTypeBoth,
		FixedSalary:    nullDec("30000"),
		CommissionRate: nullDec("10"),
	}

	tests := []struct {
		period enum.SalaryPeriod
		want   string
	}{
		{enum.SalaryPeriodMonthly, "31000"},
		{enum.SalaryPeriodFirstHalf, "16000"},
		{enum.SalaryPeriodSecondHalf, "16000"},
		{enum.SalaryPeriodWeekly, "8500"},
		{enum.SalaryPeriodDaily, "2000"},
	}
	for _, tt := range tests {
		if got := CalculateEmployeeSalary(emp, 100, tt.period); !got.Equal(dec(tt.want)) {
			t.Errorf("%s: expected %s, got %s", tt.period, tt.want, got)
		}
	}

	commissionOnly := &entity.Employee{SalaryType: enum.SalaryTypeCommission, FixedSalary: nullDec("30000"), CommissionRate: nullDec("15")}
	if got := CalculateEmployeeSalary(commissionOnly, 80, enum.SalaryPeriodMonthly); !got.Equal(dec("1200")) {
		t.Fatalf("commission-only salary must ignore fixed pay, got %s", got)
	}
}

func TestProjectSalary(t *testing.T) {
	svc, _, _, packer := commissionFixture()

	got, err := svc.ProjectSalary(context.Background(), packer.ID, enum.SalaryPeriodFirstHalf, period.Range{})
	if err != nil {
		t.Fatalf("ProjectSalary: %v", err)
	}
	if !got.FixedAmount.Equal(dec("15000")) || !got.CommissionAmount.Equal(dec("800")) || !got.Total.Equal(dec("15800")) {
		t.Fatalf("unexpected projection %+v", got)
	}
	if want := CalculateEmployeeSalary(&packer, got.BagsAttributed, enum.SalaryPeriodFirstHalf); !got.Total.Equal(want) {
		t.Fatalf("projection total %s disagrees with salary formula %s", got.Total, want)
	}
}
