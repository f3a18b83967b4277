package enums

import "fmt"

// OrderStatus tracks an order from placement through delivery.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the forward-only order lifecycle. Cancellation is
// allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	order := map[OrderStatus]int{
		OrderStatusPending:    0,
		OrderStatusConfirmed:  1,
		OrderStatusProcessing: 2,
		OrderStatusShipped:    3,
		OrderStatusDelivered:  4,
	}
	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}
	return to == from+1
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
