package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog listing. Variants and media are ordered associations
// owned by the product row.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Description string           `gorm:"column:description;not null;default:''" json:"description"`
	Category    string           `gorm:"column:category;not null" json:"category"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured  bool             `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	Media       []ProductMedia   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"media"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
