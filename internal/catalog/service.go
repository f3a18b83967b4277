package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

// FeaturedLimit caps the storefront's featured rail.
const FeaturedLimit = 6

// Service exposes catalog read paths for the storefront and product
// management for the back office.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	FeaturedProducts(ctx context.Context) ([]ProductSummary, error)
	Categories(ctx context.Context) ([]string, error)

	AdminListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	AdminGetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	IsActive    bool
	IsFeatured  bool
	Variants    []VariantInput
}

// VariantInput defines one purchasable combination.
type VariantInput struct {
	Style    string
	Colour   string
	Inch     string
	Density  string
	LaceSize string
	Price    decimal.Decimal
	Quantity int
	IsActive bool
}

// UpdateProductInput holds optional mutation values for a product. A nil
// Variants pointer leaves the variant set untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	IsActive    *bool
	IsFeatured  *bool
	Variants    *[]VariantInput
}

// service implements the catalog service.
type service struct {
	repo     ProductRepository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo ProductRepository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	input.IncludeInactive = false
	result, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetDetail(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return NewProductDTO(product), nil
}

func (s *service) FeaturedProducts(ctx context.Context) ([]ProductSummary, error) {
	rows, err := s.repo.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing featured products")
	}
	summaries := make([]ProductSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, NewProductSummary(&rows[i]))
	}
	return summaries, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}

func (s *service) AdminListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	input.IncludeInactive = true
	result, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return result, nil
}

func (s *service) AdminGetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetDetail(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return NewProductDTO(product), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductFields(input.Name, input.Category); err != nil {
		return nil, err
	}
	variants, err := buildVariants(input.Variants)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		IsActive:    input.IsActive,
		IsFeatured:  input.IsFeatured,
		Variants:    variants,
	}

	if _, err := s.repo.CreateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "uq_product_variants_selection") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate variant combination")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}

	return s.AdminGetProduct(ctx, product.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if err := validateProductFields(product.Name, product.Category); err != nil {
		return nil, err
	}

	var variants []models.ProductVariant
	if input.Variants != nil {
		variants, err = buildVariants(*input.Variants)
		if err != nil {
			return nil, err
		}
	}

	txErr := s.withTx(ctx, func(repo ProductRepository) error {
		if _, err := repo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		if input.Variants != nil {
			if err := repo.ReplaceVariants(ctx, id, variants); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if db.IsUniqueViolation(txErr, "uq_product_variants_selection") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate variant combination")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "updating product")
	}

	return s.AdminGetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

// withTx runs fn against a transaction-bound repository when a db client is
// available, and falls back to the plain repository in tests.
func (s *service) withTx(ctx context.Context, fn func(repo ProductRepository) error) error {
	txBinder, ok := s.repo.(interface {
		WithTx(tx *gorm.DB) *Repository
	})
	if s.dbClient == nil || !ok {
		return fn(s.repo)
	}
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(txBinder.WithTx(tx))
	})
}

func validateProductFields(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product category is required")
	}
	return nil
}

func buildVariants(inputs []VariantInput) ([]models.ProductVariant, error) {
	variants := make([]models.ProductVariant, 0, len(inputs))
	seen := make(map[Selection]struct{}, len(inputs))

	for _, in := range inputs {
		sel := Selection{
			Style:    strings.TrimSpace(in.Style),
			Colour:   strings.TrimSpace(in.Colour),
			Inch:     strings.TrimSpace(in.Inch),
			Density:  strings.TrimSpace(in.Density),
			LaceSize: strings.TrimSpace(in.LaceSize),
		}
		if !sel.IsComplete() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant requires style, colour, inch, density and lace size")
		}
		if in.Price.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant price must be positive")
		}
		if in.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant quantity cannot be negative")
		}
		if _, dup := seen[sel]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant combination")
		}
		seen[sel] = struct{}{}

		variants = append(variants, models.ProductVariant{
			Style:    sel.Style,
			Colour:   sel.Colour,
			Inch:     sel.Inch,
			Density:  sel.Density,
			LaceSize: sel.LaceSize,
			Price:    in.Price,
			Quantity: in.Quantity,
			IsActive: in.IsActive,
		})
	}

	return variants, nil
}
