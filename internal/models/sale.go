package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a stock-reducing transaction. ProductName,
// ProductSKU and UnitPrice are snapshots taken at sale time: editing or deleting
// the product afterwards must not change the history.
type Sale struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	ProductID    string          `gorm:"size:36;not null;index" json:"product_id"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	ProductSKU   string          `gorm:"column:product_sku;size:40;not null" json:"product_sku"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CustomerName string          `json:"customer_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	SoldBy       string          `gorm:"size:36;index" json:"sold_by,omitempty"` // actor id from the session
	Date         time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}
