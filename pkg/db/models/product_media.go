package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/timelessstrands/storefront-backend/pkg/enums"
)

// ProductMedia is one gallery entry (image or video) attached to a product.
type ProductMedia struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	MediaURL     string          `gorm:"column:media_url;not null" json:"media_url"`
	MediaType    enums.MediaKind `gorm:"column:media_type;not null;default:'image'" json:"media_type"`
	StorageKey   *string         `gorm:"column:storage_key" json:"storage_key,omitempty"`
	DisplayOrder int             `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
