package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

// LineItem is one cart entry: a product snapshot taken at add time plus the
// chosen variation selection. Two entries with the same product and the same
// selection are the same line item.
type LineItem struct {
	Product   models.Product    `json:"product"`
	Quantity  int               `json:"quantity"`
	Selection map[string]string `json:"selection"`
}

// Key returns the line item's identity: product id plus the canonical
// selection encoding. Selection maps compare by content, not insertion order.
func (li LineItem) Key() string {
	return lineKey(li.Product.ID, li.Selection)
}

// UnitPrice is the price this line pays per unit, from its own snapshot.
func (li LineItem) UnitPrice() decimal.Decimal {
	return li.Product.EffectivePrice()
}

// LineTotal is UnitPrice × Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func lineKey(productID uuid.UUID, selection map[string]string) string {
	if len(selection) == 0 {
		return productID.String()
	}
	keys := make([]string, 0, len(selection))
	for k := range selection {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(productID.String())
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(selection[k])
	}
	return b.String()
}

// Cart is the ordered line item collection. It is a pure value: operations
// mutate in memory only and never fail.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem merges quantity into an existing line with the same identity, or
// appends a new line at the end. Quantities below one count as one.
func (c *Cart) AddItem(product models.Product, quantity int, selection map[string]string) {
	if quantity < 1 {
		quantity = 1
	}
	if selection == nil {
		selection = map[string]string{}
	}

	key := lineKey(product.ID, selection)
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, LineItem{Product: product, Quantity: quantity, Selection: selection})
}

// RemoveItem deletes the line with the given identity. Absent keys no-op.
func (c *Cart) RemoveItem(key string) {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line;
// absent keys no-op.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(key)
		return
	}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal recomputes the cart total from the line snapshots on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.LineTotal())
	}
	return total
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, li := range c.Items {
		count += li.Quantity
	}
	return count
}

// Contains reports whether any line carries the given product, regardless of
// selection.
func (c *Cart) Contains(productID uuid.UUID) bool {
	for _, li := range c.Items {
		if li.Product.ID == productID {
			return true
		}
	}
	return false
}
