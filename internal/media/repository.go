package media

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// MediaRepository defines persistence for product media rows.
type MediaRepository interface {
	Create(ctx context.Context, media *models.ProductMedia) (*models.ProductMedia, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductMedia, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductMedia, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error
}

// Repository wires media persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a media row.
func (r *Repository) Create(ctx context.Context, media *models.ProductMedia) (*models.ProductMedia, error) {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// FindByID loads a media row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductMedia, error) {
	var media models.ProductMedia
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ListByProduct returns the product's media in display order.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductMedia, error) {
	var rows []models.ProductMedia
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// Delete removes a media row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductMedia{}).Error
}

// SetDisplayOrder updates a single row's position.
func (r *Repository) SetDisplayOrder(ctx context.Context, id uuid.UUID, displayOrder int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductMedia{}).
		Where("id = ?", id).
		Update("display_order", displayOrder).
		Error
}
