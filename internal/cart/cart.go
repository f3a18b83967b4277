package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one cart row: a product variant plus the shopper's quantity.
// The selection fields snapshot what was displayed when the item was added.
type LineItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Style       string          `json:"style"`
	Colour      string          `json:"colour"`
	Inch        string          `json:"inch"`
	Density     string          `json:"density"`
	LaceSize    string          `json:"lace_size"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Cart is an ordered list of line items. Items are keyed by
// (product_id, variant_id); insertion order is preserved across merges.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) indexOf(productID, variantID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart. An existing line for the same
// (product, variant) key gains the quantity and takes the incoming price,
// so a stale cart picks up the current variant price on the next add.
// A quantity of zero or less removes the line instead.
func (c *Cart) Add(item LineItem) {
	if item.Quantity <= 0 {
		c.Remove(item.ProductID, item.VariantID)
		return
	}

	if i := c.indexOf(item.ProductID, item.VariantID); i >= 0 {
		existing := &c.Items[i]
		existing.Quantity += item.Quantity
		existing.Price = item.Price
		existing.ProductName = item.ProductName
		if item.ImageURL != "" {
			existing.ImageURL = item.ImageURL
		}
		return
	}

	c.Items = append(c.Items, item)
}

// Remove drops the line for the given key. Unknown keys are a no-op.
func (c *Cart) Remove(productID, variantID uuid.UUID) {
	if i := c.indexOf(productID, variantID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line. Unknown keys are a no-op.
func (c *Cart) SetQuantity(productID, variantID uuid.UUID, qty int) {
	if qty <= 0 {
		c.Remove(productID, variantID)
		return
	}
	if i := c.indexOf(productID, variantID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems sums the quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price times quantity across all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
