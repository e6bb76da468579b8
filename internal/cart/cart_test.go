package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

func productWithPrice(price string, discount *string) models.Product {
	p := models.Product{
		ID:    uuid.New(),
		Name:  "Produto",
		Price: decimal.RequireFromString(price),
		Variations: []models.VariationAxis{
			{Type: "size", Name: "Tamanho", Options: []string{"P", "M", "G"}},
			{Type: "color", Name: "Cor", Options: []string{"azul", "preto"}},
		},
		Active: true,
	}
	if discount != nil {
		d := decimal.RequireFromString(*discount)
		p.DiscountPrice = &d
	}
	return p
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	t.Parallel()

	product := productWithPrice("50.00", nil)
	var c Cart

	c.AddItem(product, 1, map[string]string{"size": "M", "color": "azul"})
	c.AddItem(product, 2, map[string]string{"color": "azul", "size": "M"})

	if len(c.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
	if c.ItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", c.ItemCount())
	}
}

func TestAddItemDistinctSelectionsStayApart(t *testing.T) {
	t.Parallel()

	product := productWithPrice("50.00", nil)
	var c Cart

	c.AddItem(product, 1, map[string]string{"size": "M"})
	c.AddItem(product, 1, map[string]string{"size": "G"})
	c.AddItem(product, 1, nil)

	if len(c.Items) != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", len(c.Items))
	}
	// Insertion order is preserved.
	if c.Items[0].Selection["size"] != "M" || c.Items[1].Selection["size"] != "G" {
		t.Fatalf("unexpected line order: %+v", c.Items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()

	product := productWithPrice("50.00", nil)
	var c Cart
	c.AddItem(product, 2, map[string]string{"size": "M"})
	key := c.Items[0].Key()

	c.UpdateQuantity(key, 5)
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}

	// Absent keys no-op.
	c.UpdateQuantity("missing", 9)
	if len(c.Items) != 1 || c.Items[0].Quantity != 5 {
		t.Fatalf("absent key should not change the cart: %+v", c.Items)
	}

	// Zero and below remove the line.
	c.UpdateQuantity(key, 0)
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after zero quantity, got %+v", c.Items)
	}
}

func TestRemoveItemAbsentKeyNoOp(t *testing.T) {
	t.Parallel()

	product := productWithPrice("50.00", nil)
	var c Cart
	c.AddItem(product, 1, nil)

	c.RemoveItem("missing")
	if len(c.Items) != 1 {
		t.Fatalf("remove of absent key should no-op, got %+v", c.Items)
	}

	c.RemoveItem(c.Items[0].Key())
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after removal")
	}
}

func TestSubtotalUsesDiscountWhenPresent(t *testing.T) {
	t.Parallel()

	discounted := "80.00"
	withDiscount := productWithPrice("100.00", &discounted)
	plain := productWithPrice("30.00", nil)

	var c Cart
	c.AddItem(withDiscount, 2, nil) // 2 × 80.00
	c.AddItem(plain, 3, nil)        // 3 × 30.00

	want := decimal.RequireFromString("250.00")
	if got := c.Subtotal(); !got.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", got, want)
	}
}

func TestSubtotalRecomputedFromSnapshots(t *testing.T) {
	t.Parallel()

	product := productWithPrice("100.00", nil)
	var c Cart
	c.AddItem(product, 1, nil)

	// A later catalog price change does not reach the snapshot.
	product.Price = decimal.RequireFromString("999.00")

	if got := c.Subtotal(); !got.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("subtotal should come from the line snapshot, got %s", got)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	var c Cart
	c.AddItem(productWithPrice("10.00", nil), 4, nil)
	c.Clear()

	if !c.IsEmpty() || c.ItemCount() != 0 {
		t.Fatalf("expected cleared cart")
	}
	if !c.Subtotal().Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal after clear")
	}
}

func TestLineKeyInsertionOrderIndependent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	a := lineKey(id, map[string]string{"size": "M", "color": "azul"})
	b := lineKey(id, map[string]string{"color": "azul", "size": "M"})
	if a != b {
		t.Fatalf("selection key must not depend on map order: %q vs %q", a, b)
	}

	c := lineKey(id, map[string]string{"size": "G", "color": "azul"})
	if a == c {
		t.Fatalf("different selections must produce different keys")
	}
}
