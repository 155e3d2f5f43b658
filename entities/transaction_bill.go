package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type TransactionBill struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	PaymentStatus string          `gorm:"size:20" json:"payment_status"` // Pending, Paid, Failed
	PaymentToken  string          `json:"payment_token,omitempty"`
	RedirectURL   string          `json:"redirect_url,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`

	Timestamp
}

func (TransactionBill) TableName() string {
	return "transactions"
}
