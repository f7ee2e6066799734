package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product domain model. Stock is the on-hand quantity; MinStock is the alert
// threshold at or below which the product counts as low.
type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"not null;index" json:"name"`
	Brand       string          `gorm:"not null;index" json:"brand"`
	Category    string          `gorm:"not null;index" json:"category"`
	SKU         string          `gorm:"column:sku;size:40;not null;uniqueIndex" json:"sku"`
	Description string          `json:"description,omitempty"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	MinStock    int             `gorm:"not null;default:0" json:"min_stock"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
