package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

// ProductRepository defines the persistence surface the catalog service needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetDetail(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error
}

// Repository wires catalog persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetDetail fetches a product with media and variants. Public reads only see
// active rows; admin reads include everything.
func (r *Repository) GetDetail(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	qb := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})

	if includeInactive {
		qb = qb.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	} else {
		qb = qb.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at ASC")
		}).Where("is_active = ?", true)
	}

	var product models.Product
	if err := qb.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts pages through the catalog newest-first with a keyset cursor.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true)
		})

	if !input.IncludeInactive {
		qb = qb.Where("is_active = ?", true)
	}
	if input.Filters.Category != "" {
		qb = qb.Where("category = ?", input.Filters.Category)
	}
	if input.Filters.Featured != nil {
		qb = qb.Where("is_featured = ?", *input.Filters.Featured)
	}
	if search := strings.TrimSpace(input.Filters.Query); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, NewProductSummary(&rows[i]))
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

// ListFeatured returns the newest featured products up to limit.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true)
		}).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListCategories returns the distinct categories carried by active products.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).
		Error
	return categories, err
}

// CreateProduct inserts a new product row with its associations.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists changes to an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).
		Omit("Variants", "Media").
		Save(product).
		Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product; variants and media cascade in the schema.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindVariant loads a single variant row.
func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// DecrementVariantStock subtracts qty from a tracked variant, guarded so
// concurrent checkouts cannot oversell. Untracked variants (quantity 0)
// are left alone. Returns gorm.ErrRecordNotFound when the guard misses.
func (r *Repository) DecrementVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND (quantity = 0 OR quantity >= ?)", variantID, qty).
		Update("quantity", gorm.Expr("CASE WHEN quantity = 0 THEN 0 ELSE quantity - ? END", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceVariants swaps the full variant set for the product.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ProductID = productID
	}
	return tx.Create(&variants).Error
}
