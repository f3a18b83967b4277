package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem snapshots a cart line at checkout. The variant attributes and
// unit price are copied so later catalog edits never alter a placed order.
type OrderLineItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	VariantID   uuid.UUID       `gorm:"column:variant_id;type:uuid;not null" json:"variant_id"`
	ProductName string          `gorm:"column:product_name;not null" json:"product_name"`
	Style       string          `gorm:"column:style;not null" json:"style"`
	Colour      string          `gorm:"column:colour;not null" json:"colour"`
	Inch        string          `gorm:"column:inch;not null" json:"inch"`
	Density     string          `gorm:"column:density;not null" json:"density"`
	LaceSize    string          `gorm:"column:lace_size;not null" json:"lace_size"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null" json:"line_total"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
