package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/internal/cart"
	"github.com/timelessstrands/storefront-backend/internal/catalog"
	"github.com/timelessstrands/storefront-backend/internal/customers"
	"github.com/timelessstrands/storefront-backend/internal/orders"
	"github.com/timelessstrands/storefront-backend/internal/settings"
	"github.com/timelessstrands/storefront-backend/pkg/db"
	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/enums"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// orderNumberAttempts bounds retries on an order number collision.
const orderNumberAttempts = 5

// PlaceOrderInput carries the delivery details captured at checkout.
type PlaceOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CountyName      string
	DeliveryAddress string
}

// PaymentInstructions tells the shopper how to pay via M-PESA. The order
// number doubles as the payment reference the admin matches against.
type PaymentInstructions struct {
	Method    string          `json:"method"`
	Paybill   string          `json:"paybill"`
	Account   string          `json:"account"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// CheckoutResult pairs the created order with its payment instructions.
type CheckoutResult struct {
	Order   *orders.OrderDTO    `json:"order"`
	Payment PaymentInstructions `json:"payment"`
}

// Service turns a cart into a pending order.
type Service interface {
	PlaceOrder(ctx context.Context, cartToken string, input PlaceOrderInput) (*CheckoutResult, error)
}

type cartAccess interface {
	Get(ctx context.Context, token string) (*cart.CartDTO, error)
	Clear(ctx context.Context, token string) error
}

type customerUpserter interface {
	Upsert(ctx context.Context, input customers.UpsertInput) (*models.Customer, error)
}

type stockKeeper interface {
	FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	DecrementVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

type mpesaResolver interface {
	Mpesa(ctx context.Context) settings.MpesaDetails
}

// service implements the checkout service.
type service struct {
	carts     cartAccess
	customers customerUpserter
	stock     stockKeeper
	orders    orderWriter
	settings  mpesaResolver
	dbClient  *db.Client
	logg      *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(
	carts cartAccess,
	customersSvc customerUpserter,
	stock stockKeeper,
	ordersRepo orderWriter,
	settingsSvc mpesaResolver,
	dbClient *db.Client,
	logg *logger.Logger,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if customersSvc == nil {
		return nil, fmt.Errorf("customer service required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock keeper required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
	}
	return &service{
		carts:     carts,
		customers: customersSvc,
		stock:     stock,
		orders:    ordersRepo,
		settings:  settingsSvc,
		dbClient:  dbClient,
		logg:      logg,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, cartToken string, input PlaceOrderInput) (*CheckoutResult, error) {
	if strings.TrimSpace(input.CountyName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery county is required")
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	cartDTO, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(cartDTO.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	// Re-check stock against the live catalog before committing anything.
	for _, item := range cartDTO.Items {
		variant, err := s.stock.FindVariant(ctx, item.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "a cart item is no longer available").
					WithDetails(map[string]any{"product_name": item.ProductName})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking stock")
		}
		if !variant.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a cart item is no longer available").
				WithDetails(map[string]any{"product_name": item.ProductName})
		}
		if variant.Quantity != 0 && item.Quantity > variant.Quantity {
			return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock").
				WithDetails(map[string]any{
					"product_name": item.ProductName,
					"available":    variant.Quantity,
				})
		}
	}

	customer, err := s.customers.Upsert(ctx, customers.UpsertInput{
		Name:  input.CustomerName,
		Phone: input.CustomerPhone,
		Email: input.CustomerEmail,
	})
	if err != nil {
		return nil, err
	}

	order, err := s.buildOrder(ctx, customer, cartDTO, input)
	if err != nil {
		return nil, err
	}

	if err := s.persistOrder(ctx, order, cartDTO); err != nil {
		return nil, err
	}

	// The cart served its purpose; losing this write only leaves a stale slot.
	if err := s.carts.Clear(ctx, cartToken); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, cartToken), "clearing cart after checkout failed")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order placed")
	}

	mpesa := s.settings.Mpesa(ctx)
	return &CheckoutResult{
		Order: orders.NewOrderDTO(order),
		Payment: PaymentInstructions{
			Method:    "mpesa_paybill",
			Paybill:   mpesa.Paybill,
			Account:   mpesa.Account,
			Amount:    order.Total,
			Reference: order.OrderNumber,
		},
	}, nil
}

func (s *service) buildOrder(ctx context.Context, customer *models.Customer, cartDTO *cart.CartDTO, input PlaceOrderInput) (*models.Order, error) {
	orderNumber, err := s.uniqueOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]models.OrderLineItem, 0, len(cartDTO.Items))
	for _, item := range cartDTO.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderLineItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Style:       item.Style,
			Colour:      item.Colour,
			Inch:        item.Inch,
			Density:     item.Density,
			LaceSize:    item.LaceSize,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
	}

	return &models.Order{
		OrderNumber:     orderNumber,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		CountyName:      strings.TrimSpace(input.CountyName),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Status:          enums.OrderStatusPending,
		Subtotal:        subtotal,
		Total:           subtotal,
		Items:           items,
	}, nil
}

type orderTxBinder interface {
	WithTx(tx *gorm.DB) *orders.Repository
}

type stockTxBinder interface {
	WithTx(tx *gorm.DB) *catalog.Repository
}

// persistOrder writes the order and decrements tracked stock in one
// transaction when a db client is wired, or sequentially in tests.
func (s *service) persistOrder(ctx context.Context, order *models.Order, cartDTO *cart.CartDTO) error {
	write := func(ordersRepo orderWriter, stock stockKeeper) error {
		if _, err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range cartDTO.Items {
			if err := stock.DecrementVariantStock(ctx, item.VariantID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock").
						WithDetails(map[string]any{"product_name": item.ProductName})
				}
				return err
			}
		}
		return nil
	}

	var err error
	if s.dbClient != nil {
		err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			ordersRepo := s.orders
			stock := s.stock
			if binder, ok := s.orders.(orderTxBinder); ok {
				ordersRepo = binder.WithTx(tx)
			}
			if binder, ok := s.stock.(stockTxBinder); ok {
				stock = binder.WithTx(tx)
			}
			return write(ordersRepo, stock)
		})
	} else {
		err = write(s.orders, s.stock)
	}
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return coded
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "placing order")
	}
	return nil
}

// uniqueOrderNumber draws TS-XXXXXX codes until one is unused.
func (s *service) uniqueOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate, err := randomOrderNumber()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating order number")
		}
		_, err = s.orders.FindByOrderNumber(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking order number")
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not allocate an order number")
}

func randomOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TS-%06d", n.Int64()), nil
}
