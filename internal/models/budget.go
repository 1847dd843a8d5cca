package models

import "time"

// Budget caps spending for one category in one calendar month.
// Month always holds the first day of the month; the triple
// (user, category, month) is unique.
type Budget struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month" json:"category_id"`
	Month      time.Time `gorm:"type:date;not null;uniqueIndex:idx_budgets_user_category_month" json:"month"`
	Amount     float64   `gorm:"type:decimal(12,2);not null" json:"amount"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}
