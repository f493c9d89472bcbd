package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Report"
	trendSheet  = "Trend"
)

// ExportService renders financial reports as spreadsheets
type ExportService struct {
	reports *ReportService
	now     func() time.Time
}

// NewExportService creates a new export service
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{
		reports: reports,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Export builds the report workbook for r and returns it with a file name.
func (s *ExportService) Export(ctx context.Context, kind period.Kind, r period.Range) ([]byte, string, error) {
	f, err := s.workbook(ctx, kind, r)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), exportName(kind, r, s.now()), nil
}

// Snapshot writes the current month's workbook under dir and returns its path.
func (s *ExportService) Snapshot(ctx context.Context, dir string) (string, error) {
	now := s.now()
	r := period.Bounds(period.Monthly, now)

	f, err := s.workbook(ctx, period.Monthly, r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("snapshot-%s.xlsx", now.Format("20060102-150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return path, nil
}

func (s *ExportService) workbook(ctx context.Context, kind period.Kind, r period.Range) (*excelize.File, error) {
	report := s.reports.Generate(ctx, kind, r)

	anchor := r.To
	if anchor.IsZero() {
		anchor = s.now()
	}
	trendKind := kind
	if trendKind == period.Custom {
		trendKind = period.Daily
	}
	trend := s.reports.Trend(ctx, trendKind, anchor, DefaultTrendLength)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(trendSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{
		{"Period", string(report.Period)},
		{"Start date", report.StartDate},
		{"End date", report.EndDate},
		{},
		{"Total revenue", report.TotalRevenue.InexactFloat64()},
		{"Bags sold", report.TotalBagsSold},
		{"Fuel", report.FuelCosts.InexactFloat64()},
		{"Driver payments", report.DriverPayments.InexactFloat64()},
		{"Other expenses", report.OtherExpenses.InexactFloat64()},
		{"Salaries", report.TotalSalaries.InexactFloat64()},
		{"Material cost (allocated)", report.MaterialCostAllocated.InexactFloat64()},
		{"Material purchases (cash)", report.MaterialCosts.InexactFloat64()},
		{"Total expenses", report.TotalExpenses.InexactFloat64()},
		{"Profit", report.Profit.InexactFloat64()},
		{"Profit margin %", report.ProfitMargin.InexactFloat64()},
	}
	if report.Partial {
		rows = append(rows, []interface{}{}, []interface{}{"Note", "Some data could not be read; figures are zero."})
	}
	if err := writeRows(f, reportSheet, rows); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 28); err != nil {
		f.Close()
		return nil, err
	}

	trendRows := [][]interface{}{{"Period", "Revenue", "Expenses", "Profit"}}
	for _, p := range trend {
		trendRows = append(trendRows, []interface{}{
			p.PeriodLabel,
			p.Revenue.InexactFloat64(),
			p.Expenses.InexactFloat64(),
			p.Profit.InexactFloat64(),
		})
	}
	if err := writeRows(f, trendSheet, trendRows); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(trendSheet, "A1", "D1", bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(trendSheet, "A", "D", 16); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func exportName(kind period.Kind, r period.Range, now time.Time) string {
	if r.From.IsZero() && r.To.IsZero() {
		return fmt.Sprintf("report-%s-%s.xlsx", kind, now.Format("20060102"))
	}
	return fmt.Sprintf("report-%s-%s_%s.xlsx", kind, formatBound(r.From), formatBound(r.To))
}
