package models

import "time"

// Product represents a product entity in the inventory system.
// Prices are kept in integer cents.
type Product struct {
	ID         int       `gorm:"column:id_product;primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"column:product_name;uniqueIndex;not null" json:"name"`
	Quantity   int       `gorm:"column:product_quantity;not null" json:"quantity"`
	PriceCents int       `gorm:"column:product_price;not null" json:"price_cents"`
	UpdatedAt  time.Time `gorm:"column:date_updated;not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;autoUpdateTime:false" json:"updated_at"`
}

// TableName keeps the table name stable across store backends.
func (Product) TableName() string { return "product" }
