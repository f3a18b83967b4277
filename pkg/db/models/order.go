package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timelessstrands/storefront-backend/pkg/enums"
)

// Order is one placed checkout. Payment is confirmed manually by an admin
// after the customer completes the M-PESA transfer, so payment_confirmed and
// transaction_code live here rather than on a payment intent.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber      string            `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	CustomerID       uuid.UUID         `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	CustomerName     string            `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone    string            `gorm:"column:customer_phone;not null" json:"customer_phone"`
	CustomerEmail    string            `gorm:"column:customer_email;not null;default:''" json:"customer_email"`
	CountyName       string            `gorm:"column:county_name;not null;default:''" json:"county_name"`
	DeliveryAddress  string            `gorm:"column:delivery_address;not null;default:''" json:"delivery_address"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	PaymentConfirmed bool              `gorm:"column:payment_confirmed;not null;default:false" json:"payment_confirmed"`
	TransactionCode  *string           `gorm:"column:transaction_code" json:"transaction_code,omitempty"`
	Subtotal         decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Total            decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items            []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
