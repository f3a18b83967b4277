package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// OrderDTO is the full order payload for the back office.
type OrderDTO struct {
	ID               uuid.UUID       `json:"id"`
	OrderNumber      string          `json:"order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	CountyName       string          `json:"county_name"`
	DeliveryAddress  string          `json:"delivery_address"`
	Status           string          `json:"status"`
	PaymentConfirmed bool            `json:"payment_confirmed"`
	TransactionCode  *string         `json:"transaction_code,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Total            decimal.Decimal `json:"total"`
	Items            []OrderItemDTO  `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderItemDTO is one snapshotted line of an order.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Style       string          `json:"style"`
	Colour      string          `json:"colour"`
	Inch        string          `json:"inch"`
	Density     string          `json:"density"`
	LaceSize    string          `json:"lace_size"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// TrackingDTO is the public order-tracking payload. It deliberately omits
// customer contact details beyond the name used at checkout.
type TrackingDTO struct {
	OrderNumber      string          `json:"order_number"`
	CustomerName     string          `json:"customer_name"`
	Status           string          `json:"status"`
	PaymentConfirmed bool            `json:"payment_confirmed"`
	CountyName       string          `json:"county_name"`
	Total            decimal.Decimal `json:"total"`
	Items            []OrderItemDTO  `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderListResult pairs a page of orders with its continuation cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO maps the persisted order to its admin payload.
func NewOrderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		CustomerPhone:    order.CustomerPhone,
		CustomerEmail:    order.CustomerEmail,
		CountyName:       order.CountyName,
		DeliveryAddress:  order.DeliveryAddress,
		Status:           string(order.Status),
		PaymentConfirmed: order.PaymentConfirmed,
		TransactionCode:  order.TransactionCode,
		Subtotal:         order.Subtotal,
		Total:            order.Total,
		Items:            newOrderItemDTOs(order.Items),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// NewTrackingDTO maps the persisted order to its public tracking payload.
func NewTrackingDTO(order *models.Order) *TrackingDTO {
	return &TrackingDTO{
		OrderNumber:      order.OrderNumber,
		CustomerName:     order.CustomerName,
		Status:           string(order.Status),
		PaymentConfirmed: order.PaymentConfirmed,
		CountyName:       order.CountyName,
		Total:            order.Total,
		Items:            newOrderItemDTOs(order.Items),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

func newOrderItemDTOs(items []models.OrderLineItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Style:       item.Style,
			Colour:      item.Colour,
			Inch:        item.Inch,
			Density:     item.Density,
			LaceSize:    item.LaceSize,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	return out
}
