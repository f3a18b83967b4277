package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is created or refreshed at checkout; phone is the natural key.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex" json:"phone"`
	Email     string    `gorm:"column:email;not null;default:''" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
