package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/timelessstrands/storefront-backend/pkg/enums"
)

// AdminUser is a back-office account. Shoppers never authenticate.
type AdminUser struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string          `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.AdminRole `gorm:"column:role;not null;default:'staff'" json:"role"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
