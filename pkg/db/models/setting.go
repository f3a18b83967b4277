package models

import "time"

// Setting is one website_settings row; key is the primary key so upserts are
// a plain conflict-update.
type Setting struct {
	Key         string    `gorm:"column:key;primaryKey" json:"key"`
	Value       string    `gorm:"column:value;not null;default:''" json:"value"`
	Description string    `gorm:"column:description;not null;default:''" json:"description"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps the original storage name.
func (Setting) TableName() string {
	return "website_settings"
}
