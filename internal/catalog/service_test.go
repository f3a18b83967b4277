package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

type stubRepo struct {
	findByID        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	getDetail       func(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
	listProducts    func(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	listFeatured    func(ctx context.Context, limit int) ([]models.Product, error)
	listCategories  func(ctx context.Context) ([]string, error)
	createProduct   func(ctx context.Context, product *models.Product) (*models.Product, error)
	updateProduct   func(ctx context.Context, product *models.Product) (*models.Product, error)
	deleteProduct   func(ctx context.Context, id uuid.UUID) error
	replaceVariants func(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.findByID(ctx, id)
}

func (s *stubRepo) GetDetail(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	return s.getDetail(ctx, id, includeInactive)
}

func (s *stubRepo) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	return s.listProducts(ctx, input)
}

func (s *stubRepo) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	return s.listFeatured(ctx, limit)
}

func (s *stubRepo) ListCategories(ctx context.Context) ([]string, error) {
	return s.listCategories(ctx)
}

func (s *stubRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.createProduct(ctx, product)
}

func (s *stubRepo) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.updateProduct(ctx, product)
}

func (s *stubRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteProduct(ctx, id)
}

func (s *stubRepo) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	return s.replaceVariants(ctx, productID, variants)
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		getDetail: func(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
			assert.False(t, includeInactive)
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestGetProductDerivesAxes(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Bouncy Curls",
		Category: "Curly",
		IsActive: true,
		Variants: []models.ProductVariant{
			variantFixture("Curly", "Black", "12", "180%", "4x4", 2800, 4),
			variantFixture("Curly", "Brown", "14", "200%", "4x4", 3100, 2),
		},
	}

	repo := &stubRepo{
		getDetail: func(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
			return product, nil
		},
	}
	svc := newTestService(t, repo)

	dto, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Curly"}, dto.Axes.Styles)
	assert.Equal(t, []string{"Black", "Brown"}, dto.Axes.Colours)
	assert.Len(t, dto.Variants, 2)
}

func TestListProductsForcesActiveOnly(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		listProducts: func(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
			assert.False(t, input.IncludeInactive)
			return &ProductListResult{}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.ListProducts(context.Background(), ListProductsInput{IncludeInactive: true})
	require.NoError(t, err)
}

func TestFeaturedProductsLimit(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		listFeatured: func(ctx context.Context, limit int) ([]models.Product, error) {
			assert.Equal(t, FeaturedLimit, limit)
			return nil, nil
		},
	}
	svc := newTestService(t, repo)

	summaries, err := svc.FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{})

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{
			name:  "missing name",
			input: CreateProductInput{Category: "Straight"},
		},
		{
			name:  "missing category",
			input: CreateProductInput{Name: "Silky"},
		},
		{
			name: "incomplete variant",
			input: CreateProductInput{
				Name:     "Silky",
				Category: "Straight",
				Variants: []VariantInput{{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%"}},
			},
		},
		{
			name: "nonpositive price",
			input: CreateProductInput{
				Name:     "Silky",
				Category: "Straight",
				Variants: []VariantInput{{
					Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4",
					Price: decimal.Zero, Quantity: 1,
				}},
			},
		},
		{
			name: "duplicate combination",
			input: CreateProductInput{
				Name:     "Silky",
				Category: "Straight",
				Variants: []VariantInput{
					{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4", Price: decimal.NewFromInt(3000), Quantity: 1},
					{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4", Price: decimal.NewFromInt(3200), Quantity: 2},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateProduct(context.Background(), tc.input)
			coded := pkgerrors.As(err)
			require.NotNil(t, coded)
			assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
		})
	}
}

func TestCreateProductSuccess(t *testing.T) {
	t.Parallel()

	var created *models.Product
	repo := &stubRepo{
		createProduct: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			product.ID = uuid.New()
			created = product
			return product, nil
		},
		getDetail: func(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
			assert.True(t, includeInactive)
			return created, nil
		},
	}
	svc := newTestService(t, repo)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "  Silky Straight  ",
		Category:   "Straight",
		IsActive:   true,
		IsFeatured: true,
		Variants: []VariantInput{{
			Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4",
			Price: decimal.NewFromInt(3000), Quantity: 5, IsActive: true,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Silky Straight", dto.Name)
	require.Len(t, dto.Variants, 1)
	assert.True(t, dto.Variants[0].Price.Equal(decimal.NewFromInt(3000)))
}

func TestUpdateProductPartialMutation(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	stored := &models.Product{ID: id, Name: "Old Name", Category: "Straight", IsActive: true}

	repo := &stubRepo{
		findByID: func(ctx context.Context, got uuid.UUID) (*models.Product, error) {
			assert.Equal(t, id, got)
			return stored, nil
		},
		updateProduct: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			return product, nil
		},
		getDetail: func(ctx context.Context, got uuid.UUID, includeInactive bool) (*models.Product, error) {
			return stored, nil
		},
	}
	svc := newTestService(t, repo)

	name := "New Name"
	featured := true
	dto, err := svc.UpdateProduct(context.Background(), id, UpdateProductInput{
		Name:       &name,
		IsFeatured: &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", dto.Name)
	assert.True(t, dto.IsFeatured)
	assert.Equal(t, "Straight", dto.Category)
}

func TestUpdateProductReplacesVariants(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	stored := &models.Product{ID: id, Name: "Wig", Category: "Curly", IsActive: true}
	var replaced []models.ProductVariant

	repo := &stubRepo{
		findByID: func(ctx context.Context, got uuid.UUID) (*models.Product, error) {
			return stored, nil
		},
		updateProduct: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			return product, nil
		},
		replaceVariants: func(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
			assert.Equal(t, id, productID)
			replaced = variants
			return nil
		},
		getDetail: func(ctx context.Context, got uuid.UUID, includeInactive bool) (*models.Product, error) {
			return stored, nil
		},
	}
	svc := newTestService(t, repo)

	variants := []VariantInput{{
		Style: "Curly", Colour: "Black", Inch: "12", Density: "180%", LaceSize: "4x4",
		Price: decimal.NewFromInt(2800), Quantity: 3, IsActive: true,
	}}
	_, err := svc.UpdateProduct(context.Background(), id, UpdateProductInput{Variants: &variants})
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.Equal(t, "Curly", replaced[0].Style)
}

func TestDeleteProductNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo)

	err := svc.DeleteProduct(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
