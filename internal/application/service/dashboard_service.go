package service

import (
	"context"
	"log"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/period"
)

const topDriversLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	inventory *InventoryService
	reports   *ReportService
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(inventory *InventoryService, reports *ReportService, analytics repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{
		inventory: inventory,
		reports:   reports,
		analytics: analytics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Inventory   *InventoryStatus                  `json:"inventory"`
	Today       *FinancialReport                  `json:"today"`
	Month       *FinancialReport                  `json:"month"`
	Outstanding repository.OutstandingSettlements `json:"outstanding"`
	DailySales  []repository.DailyRevenue         `json:"dailySales"`
	TopDrivers  []repository.DriverVolume         `json:"topDrivers"`
}

// GetDashboardStats returns dashboard statistics. Aggregate failures are
// logged and leave their section empty.
func (s *DashboardService) GetDashboardStats(ctx context.Context) *DashboardStats {
	now := s.now()
	month := period.Bounds(period.Monthly, now)
	lastWeek := period.NewRange(now.AddDate(0, 0, -6), now)

	stats := &DashboardStats{
		Inventory:  s.inventory.Status(ctx, nil),
		Today:      s.reports.Generate(ctx, period.Daily, period.Bounds(period.Daily, now)),
		Month:      s.reports.Generate(ctx, period.Monthly, month),
		DailySales: []repository.DailyRevenue{},
		TopDrivers: []repository.DriverVolume{},
	}

	if outstanding, err := s.analytics.OutstandingSettlements(ctx); err != nil {
		log.Printf("dashboard outstanding settlements: %v", err)
	} else {
		stats.Outstanding = outstanding
	}

	if daily, err := s.analytics.DailyRevenue(ctx, lastWeek); err != nil {
		log.Printf("dashboard daily revenue: %v", err)
	} else if daily != nil {
		stats.DailySales = daily
	}

	if drivers, err := s.analytics.TopDrivers(ctx, month, topDriversLimit); err != nil {
		log.Printf("dashboard top drivers: %v", err)
	} else if drivers != nil {
		stats.TopDrivers = drivers
	}

	return stats
}
