package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal represents a savings goal the user is working towards.
type Goal struct {
	Base
	UserID        string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string     `gorm:"size:128;not null" json:"title"`
	TargetAmount  float64    `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount float64    `gorm:"type:decimal(12,2);default:0" json:"current_amount"`
	TargetDate    *time.Time `gorm:"type:date" json:"target_date"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	// ProgressPercent is derived, never persisted.
	ProgressPercent float64 `gorm:"-" json:"progress_percent"`
}

// Progress returns how far along the goal is, as a percentage capped at 100.
// A zero target yields 0 to avoid dividing by zero. There is deliberately no
// lower clamp: a negative current amount reads as negative progress.
func (g *Goal) Progress() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// AfterFind recomputes the derived progress on every read.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	g.ProgressPercent = g.Progress()
	return nil
}
