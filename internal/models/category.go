package models

import "gorm.io/gorm"

// CategoryKind classifies a category as an income or expense bucket.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "💼"

// Category represents a transaction category. Kind is nullable: a category
// may exist before the user decides which side of the ledger it belongs to.
type Category struct {
	Base
	UserID string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string        `gorm:"not null" json:"name"`
	Kind   *CategoryKind `gorm:"size:10" json:"kind"`
	Icon   string        `gorm:"size:10" json:"icon"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}

// BeforeCreate applies the default icon. Kept in a hook rather than a column
// default so SQLite test databases behave the same as Postgres.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Icon == "" {
		c.Icon = DefaultCategoryIcon
	}
	return c.Base.BeforeCreate(tx)
}
