package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// ProductDTO is the full product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	IsActive    bool              `json:"is_active"`
	IsFeatured  bool              `json:"is_featured"`
	Media       []ProductMediaDTO `json:"media"`
	Variants    []VariantDTO      `json:"variants"`
	Axes        Axes              `json:"axes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VariantDTO exposes one purchasable combination.
type VariantDTO struct {
	ID       uuid.UUID       `json:"id"`
	Style    string          `json:"style"`
	Colour   string          `json:"colour"`
	Inch     string          `json:"inch"`
	Density  string          `json:"density"`
	LaceSize string          `json:"lace_size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	IsActive bool            `json:"is_active"`
}

// ProductMediaDTO captures product media metadata.
type ProductMediaDTO struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	DisplayOrder int       `json:"display_order"`
}

// ProductSummary is the storefront grid payload.
type ProductSummary struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	IsFeatured   bool             `json:"is_featured"`
	PriceFrom    *decimal.Decimal `json:"price_from,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ProductListResult pairs a page of summaries with its continuation cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model, deriving the option
// axes from the variants present.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		IsActive:    product.IsActive,
		IsFeatured:  product.IsFeatured,
		Media:       make([]ProductMediaDTO, 0, len(product.Media)),
		Variants:    make([]VariantDTO, 0, len(product.Variants)),
		Axes:        AxisValues(product.Variants),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}

	for _, m := range product.Media {
		dto.Media = append(dto.Media, ProductMediaDTO{
			ID:           m.ID,
			URL:          m.MediaURL,
			Type:         string(m.MediaType),
			DisplayOrder: m.DisplayOrder,
		})
	}

	for _, v := range product.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:       v.ID,
			Style:    v.Style,
			Colour:   v.Colour,
			Inch:     v.Inch,
			Density:  v.Density,
			LaceSize: v.LaceSize,
			Price:    v.Price,
			Quantity: v.Quantity,
			IsActive: v.IsActive,
		})
	}

	return dto
}

// NewProductSummary derives the grid payload from a loaded product.
func NewProductSummary(product *models.Product) ProductSummary {
	summary := ProductSummary{
		ID:         product.ID,
		Name:       product.Name,
		Category:   product.Category,
		IsFeatured: product.IsFeatured,
		CreatedAt:  product.CreatedAt,
	}

	for _, v := range product.Variants {
		if !v.IsActive {
			continue
		}
		price := v.Price
		if summary.PriceFrom == nil || price.LessThan(*summary.PriceFrom) {
			summary.PriceFrom = &price
		}
	}

	if len(product.Media) > 0 {
		summary.ThumbnailURL = product.Media[0].MediaURL
	}

	return summary
}
