package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/internal/catalog"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

type memoryStore struct {
	carts   map[string]*Cart
	saveErr error
	saves   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string]*Cart{}}
}

func (m *memoryStore) Load(_ context.Context, token string) *Cart {
	if c, ok := m.carts[token]; ok {
		clone := &Cart{Items: append([]LineItem(nil), c.Items...)}
		return clone
	}
	return &Cart{}
}

func (m *memoryStore) Save(_ context.Context, token string, cart *Cart) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[token] = &Cart{Items: append([]LineItem(nil), cart.Items...)}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.carts, token)
	return nil
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProducts) GetDetail(_ context.Context, id uuid.UUID, _ bool) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func straightWig() *models.Product {
	productID := uuid.New()
	return &models.Product{
		ID:       productID,
		Name:     "Silky Straight",
		Category: "Straight",
		IsActive: true,
		Media: []models.ProductMedia{
			{ID: uuid.New(), ProductID: productID, MediaURL: "https://cdn.example.com/straight.jpg"},
		},
		Variants: []models.ProductVariant{
			{
				ID: uuid.New(), ProductID: productID,
				Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4",
				Price: decimal.NewFromInt(3000), Quantity: 5, IsActive: true,
			},
			{
				ID: uuid.New(), ProductID: productID,
				Style: "Straight", Colour: "Black", Inch: "16", Density: "180%", LaceSize: "4x4",
				Price: decimal.NewFromInt(3500), Quantity: 2, IsActive: true,
			},
		},
	}
}

func straightSelection() catalog.Selection {
	return catalog.Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
}

func newCartService(t *testing.T, store cartStore, products productLoader) Service {
	t.Helper()
	svc, err := NewService(store, products, nil)
	require.NoError(t, err)
	return svc
}

func TestAddItemSnapshotsVariant(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	dto, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	item := dto.Items[0]
	assert.Equal(t, product.Variants[0].ID, item.VariantID)
	assert.Equal(t, "Silky Straight", item.ProductName)
	assert.Equal(t, "https://cdn.example.com/straight.jpg", item.ImageURL)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 2, dto.TotalItems)
	assert.True(t, dto.TotalPrice.Equal(decimal.NewFromInt(6000)))
}

func TestAddItemUnresolvableSelection(t *testing.T) {
	t.Parallel()

	product := straightWig()
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	sel := straightSelection()
	sel.Style = "Wavy"
	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: sel,
		Quantity:  1,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAddItemIncompleteSelection(t *testing.T) {
	t.Parallel()

	product := straightWig()
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	sel := straightSelection()
	sel.LaceSize = ""
	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: sel,
		Quantity:  1,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: uuid.New(),
		Selection: straightSelection(),
		Quantity:  1,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestAddItemInsufficientStock(t *testing.T) {
	t.Parallel()

	product := straightWig()
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  6,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeOutOfStock, coded.Code())
}

func TestAddItemStockCeilingCountsHeldQuantity(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  4,
	})
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  2,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeOutOfStock, coded.Code())
}

func TestAddItemMergeResyncsPrice(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  1,
	})
	require.NoError(t, err)

	// price drop between adds
	product.Variants[0].Price = decimal.NewFromInt(2500)

	dto, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  1,
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, 2, dto.Items[0].Quantity)
	assert.True(t, dto.Items[0].Price.Equal(decimal.NewFromInt(2500)))
	assert.True(t, dto.TotalPrice.Equal(decimal.NewFromInt(5000)))
}

func TestSetQuantityAndRemoveFlow(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  3,
	})
	require.NoError(t, err)

	variantID := product.Variants[0].ID

	dto, err := svc.SetQuantity(context.Background(), "token-1", product.ID, variantID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, dto.TotalItems)

	dto, err = svc.SetQuantity(context.Background(), "token-1", product.ID, variantID, 0)
	require.NoError(t, err)
	assert.Empty(t, dto.Items)

	dto, err = svc.RemoveItem(context.Background(), "token-1", product.ID, variantID)
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
}

func TestAddItemSaveFailureStillReturnsCart(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	store.saveErr = assert.AnError
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	dto, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dto.TotalItems)
	assert.Equal(t, 1, store.saves)
}

func TestClearDropsSlot(t *testing.T) {
	t.Parallel()

	product := straightWig()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.AddItem(context.Background(), "token-1", AddItemInput{
		ProductID: product.ID,
		Selection: straightSelection(),
		Quantity:  1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "token-1"))

	dto, err := svc.Get(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
}

func TestGetRequiresToken(t *testing.T) {
	t.Parallel()

	svc := newCartService(t, newMemoryStore(), &stubProducts{})

	_, err := svc.Get(context.Background(), "")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestNewTokenIsUUID(t *testing.T) {
	t.Parallel()

	svc := newCartService(t, newMemoryStore(), &stubProducts{})

	token := svc.NewToken()
	_, err := uuid.Parse(token)
	require.NoError(t, err)
	assert.NotEqual(t, token, svc.NewToken())
}
