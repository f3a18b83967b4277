package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/internal/catalog"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// CartDTO is the cart payload returned to the storefront.
type CartDTO struct {
	Token      string          `json:"token"`
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// AddItemInput identifies the product, the shopper's option selection and
// the quantity to add. The variant is resolved server-side so prices are
// always snapshotted from the current catalog.
type AddItemInput struct {
	ProductID uuid.UUID
	Selection catalog.Selection
	Quantity  int
}

// Service exposes the shopper cart operations.
type Service interface {
	NewToken() string
	Get(ctx context.Context, token string) (*CartDTO, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (*CartDTO, error)
	SetQuantity(ctx context.Context, token string, productID, variantID uuid.UUID, qty int) (*CartDTO, error)
	RemoveItem(ctx context.Context, token string, productID, variantID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, token string) error
}

type productLoader interface {
	GetDetail(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)
}

type cartStore interface {
	Load(ctx context.Context, token string) *Cart
	Save(ctx context.Context, token string, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

// service implements the cart service.
type service struct {
	store    cartStore
	products productLoader
	logg     *logger.Logger
}

// NewService constructs a cart service instance.
func NewService(store cartStore, products productLoader, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products, logg: logg}, nil
}

func (s *service) NewToken() string {
	return uuid.NewString()
}

func (s *service) Get(ctx context.Context, token string) (*CartDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return s.toDTO(token, s.store.Load(ctx, token)), nil
}

func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (*CartDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if !input.Selection.IsComplete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "all five options must be selected")
	}

	product, err := s.products.GetDetail(ctx, input.ProductID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	variant := catalog.Resolve(product.Variants, input.Selection)
	if variant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected combination is not available")
	}

	cartValue := s.store.Load(ctx, token)

	held := 0
	if i := cartValue.indexOf(product.ID, variant.ID); i >= 0 {
		held = cartValue.Items[i].Quantity
	}
	if !catalog.CanOrder(product.Variants, input.Selection, held+input.Quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock").
			WithDetails(map[string]any{"available": variant.Quantity})
	}

	item := LineItem{
		ProductID:   product.ID,
		VariantID:   variant.ID,
		ProductName: product.Name,
		Style:       variant.Style,
		Colour:      variant.Colour,
		Inch:        variant.Inch,
		Density:     variant.Density,
		LaceSize:    variant.LaceSize,
		Price:       variant.Price,
		Quantity:    input.Quantity,
	}
	if len(product.Media) > 0 {
		item.ImageURL = product.Media[0].MediaURL
	}

	cartValue.Add(item)
	s.persist(ctx, token, cartValue)

	return s.toDTO(token, cartValue), nil
}

func (s *service) SetQuantity(ctx context.Context, token string, productID, variantID uuid.UUID, qty int) (*CartDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	cartValue := s.store.Load(ctx, token)
	cartValue.SetQuantity(productID, variantID, qty)
	s.persist(ctx, token, cartValue)

	return s.toDTO(token, cartValue), nil
}

func (s *service) RemoveItem(ctx context.Context, token string, productID, variantID uuid.UUID) (*CartDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	cartValue := s.store.Load(ctx, token)
	cartValue.Remove(productID, variantID)
	s.persist(ctx, token, cartValue)

	return s.toDTO(token, cartValue), nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := s.store.Delete(ctx, token); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "clearing cart slot failed")
	}
	return nil
}

// persist writes the slot best-effort. The in-memory cart is the response
// either way; a failed write only costs the shopper on their next visit.
func (s *service) persist(ctx context.Context, token string, cartValue *Cart) {
	if err := s.store.Save(ctx, token, cartValue); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "saving cart slot failed")
	}
}

func (s *service) toDTO(token string, cartValue *Cart) *CartDTO {
	items := cartValue.Items
	if items == nil {
		items = []LineItem{}
	}
	return &CartDTO{
		Token:      token,
		Items:      items,
		TotalItems: cartValue.TotalItems(),
		TotalPrice: cartValue.TotalPrice(),
	}
}
