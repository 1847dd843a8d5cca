package models

import "time"

// PaymentMode represents how a transaction was paid.
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeCard PaymentMode = "card"
	PaymentModeUPI  PaymentMode = "upi"
)

// Transaction represents a financial transaction in the system.
// CategoryID is a weak reference: deleting the category nulls it,
// the transaction itself survives.
type Transaction struct {
	Base
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string     `gorm:"type:uuid;index" json:"category_id"`
	Amount      float64     `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMode PaymentMode `gorm:"size:10;not null" json:"payment_mode"`
	Description string      `json:"description"`
	Date        time.Time   `gorm:"type:date;not null;index" json:"date"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
