package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusRequested QuoteStatus = "requested"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusDeclined  QuoteStatus = "declined"
)

// QuoteRequest covers catalog items without a fixed unit price: the customer
// describes the garment, staff answer with an amount.
type QuoteRequest struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID  string          `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	ItemID      string          `gorm:"type:varchar(40);not null" json:"item_id"`
	ItemName    string          `gorm:"type:varchar(100)" json:"item_name"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Status      QuoteStatus     `gorm:"type:varchar(20);default:'requested'" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (QuoteRequest) TableName() string {
	return "quote_requests"
}
