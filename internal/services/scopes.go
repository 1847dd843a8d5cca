package services

import (
	"time"

	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows owned by the given user. Every read and
// write on categories, transactions, budgets and goals goes through this
// scope so owner filtering happens at the query boundary, never by
// post-filtering in memory. The user ID always comes from the authenticated
// caller; client-supplied owner fields are ignored.
func OwnedBy(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// dateOnly truncates a timestamp to midnight UTC so calendar dates compare
// and group consistently across drivers.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthStart normalizes any date within a month to the first of that month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
