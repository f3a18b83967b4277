package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// SettingsRepository defines persistence for website settings rows.
type SettingsRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	Find(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
	Delete(ctx context.Context, key string) error
}

// Repository wires settings persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every settings row ordered by key.
func (r *Repository) List(ctx context.Context) ([]models.Setting, error) {
	var rows []models.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

// Find loads a single settings row.
func (r *Repository) Find(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert inserts or overwrites a settings row, keeping the stored
// description when the update leaves it empty.
func (r *Repository) Upsert(ctx context.Context, setting *models.Setting) error {
	assignments := []string{"value", "updated_at"}
	if setting.Description != "" {
		assignments = append(assignments, "description")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		}).
		Create(setting).
		Error
}

// Delete removes a settings row by key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Setting{}).Error
}
