package repository

import (
	"context"

	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/period"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) DailyRevenue(ctx context.Context, rng period.Range) ([]domainRepo.DailyRevenue, error) {
	var results []domainRepo.DailyRevenue

	err := conn(ctx, r.db).Table("sales").
		Scopes(DateRange("date", rng)).
		Select("date, COALESCE(SUM(bags_sold), 0) AS bags, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("date").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) TopDrivers(ctx context.Context, rng period.Range, limit int) ([]domainRepo.DriverVolume, error) {
	var results []domainRepo.DriverVolume

	err := conn(ctx, r.db).Table("sales s").
		Scopes(DateRange("s.date", rng)).
		Joins("JOIN employees e ON e.id = s.employee_id").
		Select(`s.employee_id AS employee_id,
			e.name AS driver_name,
			COALESCE(SUM(s.bags_sold), 0) AS bags,
			COALESCE(SUM(s.total_amount), 0) AS revenue`).
		Group("s.employee_id, e.name").
		Order("bags DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) OutstandingSettlements(ctx context.Context) (domainRepo.OutstandingSettlements, error) {
	var result domainRepo.OutstandingSettlements

	err := conn(ctx, r.db).Raw(`
		SELECT
			COUNT(*) AS count,
			COALESCE(SUM(expected_amount), 0) AS expected,
			COALESCE(SUM(settled_amount), 0) AS settled,
			COALESCE(SUM(remaining_balance), 0) AS remaining
		FROM settlements
		WHERE is_settled = false
	`).Scan(&result).Error

	return result, err
}
