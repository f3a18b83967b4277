package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is one purchasable SKU, distinguished from its siblings by
// the five attribute axes. The (product_id, style, colour, inch, density,
// lace_size) tuple is unique per product.
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Style     string          `gorm:"column:style;not null" json:"style"`
	Colour    string          `gorm:"column:colour;not null" json:"colour"`
	Inch      string          `gorm:"column:inch;not null" json:"inch"`
	Density   string          `gorm:"column:density;not null" json:"density"`
	LaceSize  string          `gorm:"column:lace_size;not null" json:"lace_size"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
