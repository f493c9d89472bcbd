package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	f := newReportFixture()
	f.sales.sales = []entity.Sale{{BagsSold: 10, TotalAmount: dec("2500"), Date: day("2026-10-16")}}
	svc := NewExportService(f.svc)

	data, name, err := svc.Export(context.Background(), period.Daily, singleDay("2026-10-16"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "report-daily-2026-10-16_2026-10-16.xlsx" {
		t.Fatalf("unexpected file name %q", name)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Report" || sheets[1] != "Trend" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	revenue, err := book.GetCellValue("Report", "B5")
	if err != nil || revenue != "2500" {
		t.Fatalf("expected revenue 2500 in B5, got %q (%v)", revenue, err)
	}
	rows, err := book.GetRows("Trend")
	if err != nil {
		t.Fatalf("trend rows: %v", err)
	}
	if len(rows) != DefaultTrendLength+1 {
		t.Fatalf("expected header and %d points, got %d rows", DefaultTrendLength, len(rows))
	}
}

func TestSchedulerPurge(t *testing.T) {
	tokens := newFakeTokenRepo()
	now := time.Now().UTC()
	_ = tokens.Create(context.Background(), &entity.RecoveryToken{TokenHash: "old", ExpiresAt: now.Add(-time.Minute)})
	_ = tokens.Create(context.Background(), &entity.RecoveryToken{TokenHash: "live", ExpiresAt: now.Add(time.Hour)})

	maint := NewMaintenanceService(nil, &fakeIdempotencyRepo{purged: 3}, tokens, t.TempDir())
	if err := maint.Purge(context.Background()); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("expected only the live token to remain, got %d", len(tokens.tokens))
	}
}

func TestSchedulerSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	maint := NewMaintenanceService(NewExportService(newReportFixture().svc), &fakeIdempotencyRepo{}, newFakeTokenRepo(), dir)

	if err := maint.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one snapshot file, got %d (%v)", len(entries), err)
	}
}

func TestSchedulerRunOnceHonoursTimeout(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	done := make(chan error, 1)

	task := Task{Name: "slow", Interval: time.Hour, Run: func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	}}

	start := time.Now()
	s.RunOnce(context.Background(), task)
	if time.Since(start) > time.Second {
		t.Fatalf("run was not bounded by the timeout")
	}
	if err := <-done; err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	runs := make(chan struct{}, 10)
	s := NewScheduler(time.Second, Task{Name: "tick", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
		select {
		case runs <- struct{}{}:
		default:
		}
		return nil
	}})

	s.Start(context.Background())
	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatalf("task never ran")
	}
	s.Stop()
}
