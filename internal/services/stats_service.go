package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// incomeStatsWindowDays is the trailing window for income statistics.
// A transaction dated exactly 30 days ago is still inside the window.
const incomeStatsWindowDays = 30

// statsService computes income aggregations.
type statsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db, now: time.Now}
}

// IncomeStats aggregates the caller's income transactions over the trailing
// 30-day window:
//
//   - ChartData: total per date, ascending. Dates with no income
//     transactions are omitted, not zero-filled.
//   - IncomeSources: total per (category name, icon, date), date descending.
//     The date is part of the grouping key, so one category can appear once
//     per day it had income.
//
// Only transactions whose category kind is income count; uncategorized
// transactions never do. An empty result is a valid outcome, not an error.
func (s *statsService) IncomeStats(userID string) (*IncomeStats, error) {
	windowStart := dateOnly(s.now()).AddDate(0, 0, -incomeStatsWindowDays)

	base := func() *gorm.DB {
		return s.db.Model(&models.Transaction{}).
			Joins("JOIN categories ON categories.id = transactions.category_id").
			// user_id is qualified by hand: OwnedBy would be ambiguous after the join.
			Where("transactions.user_id = ?", userID).
			Where("categories.kind = ?", models.CategoryKindIncome).
			Where("transactions.date >= ?", windowStart)
	}

	chartData := []ChartPoint{}
	if err := base().
		Select("transactions.date AS date, SUM(transactions.amount) AS total").
		Group("transactions.date").
		Order("transactions.date ASC").
		Scan(&chartData).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	incomeSources := []IncomeSource{}
	if err := base().
		Select("categories.name AS category_name, categories.icon AS category_icon, transactions.date AS date, SUM(transactions.amount) AS total").
		Group("categories.name, categories.icon, transactions.date").
		Order("transactions.date DESC").
		Scan(&incomeSources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &IncomeStats{
		ChartData:     chartData,
		IncomeSources: incomeSources,
	}, nil
}
