package repository

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyRevenue is sales aggregated for one calendar day.
type DailyRevenue struct {
	Date    time.Time       `json:"date"`
	Bags    int64           `json:"bags"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DriverVolume is sales aggregated for one employee.
type DriverVolume struct {
	EmployeeID uuid.UUID       `json:"employeeId"`
	DriverName string          `json:"driverName"`
	Bags       int64           `json:"bags"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// OutstandingSettlements summarizes settlements that are not yet settled.
type OutstandingSettlements struct {
	Count     int64           `json:"count"`
	Expected  decimal.Decimal `json:"expected"`
	Settled   decimal.Decimal `json:"settled"`
	Remaining decimal.Decimal `json:"remaining"`
}

// AnalyticsRepository runs the aggregate queries behind the dashboard.
type AnalyticsRepository interface {
	// DailyRevenue returns one row per day with sales, oldest first.
	DailyRevenue(ctx context.Context, r period.Range) ([]DailyRevenue, error)

	// TopDrivers ranks employees by bags sold. Sales without an employee are skipped.
	TopDrivers(ctx context.Context, r period.Range, limit int) ([]DriverVolume, error)

	OutstandingSettlements(ctx context.Context) (OutstandingSettlements, error)
}
