package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

type stubProducts struct {
	byID map[uuid.UUID]models.Product
}

func (s *stubProducts) ProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return &p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func newTestService(t *testing.T, storage Storage, products ...models.Product) Service {
	t.Helper()
	loader := &stubProducts{byID: map[uuid.UUID]models.Product{}}
	for _, p := range products {
		loader.byID[p.ID] = p
	}
	svc, err := NewService(storage, loader, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceAddItemPersistsSnapshot(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	product := productWithPrice("42.00", nil)
	svc := newTestService(t, storage, product)

	ctx := context.Background()
	got, err := svc.AddItem(ctx, "sess-1", product.ID, 2, map[string]string{"size": "M"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got.ItemCount() != 2 {
		t.Fatalf("expected item count 2, got %d", got.ItemCount())
	}

	// A fresh load sees the persisted snapshot.
	reloaded, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.ItemCount() != 2 || !reloaded.Subtotal().Equal(decimal.RequireFromString("84.00")) {
		t.Fatalf("unexpected reloaded cart: count=%d subtotal=%s", reloaded.ItemCount(), reloaded.Subtotal())
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, NewMemoryStorage())
	_, err := svc.AddItem(context.Background(), "sess-1", uuid.New(), 1, nil)
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceAddItemInactiveProduct(t *testing.T) {
	t.Parallel()

	product := productWithPrice("10.00", nil)
	product.Active = false
	svc := newTestService(t, NewMemoryStorage(), product)

	_, err := svc.AddItem(context.Background(), "sess-1", product.ID, 1, nil)
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("expected not found for inactive product, got %v", err)
	}
}

func TestServiceSaveFailureKeepsMutation(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	storage.FailSaves = true
	product := productWithPrice("10.00", nil)
	svc := newTestService(t, storage, product)

	got, err := svc.AddItem(context.Background(), "sess-1", product.ID, 1, nil)
	if err != nil {
		t.Fatalf("AddItem should succeed despite save failure: %v", err)
	}
	if got.ItemCount() != 1 {
		t.Fatalf("expected the in-memory mutation to stand, got %+v", got.Items)
	}
}

func TestServiceClear(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	product := productWithPrice("10.00", nil)
	svc := newTestService(t, storage, product)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess-1", product.ID, 1, nil); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	reloaded, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reloaded.IsEmpty() {
		t.Fatalf("expected empty cart after clear, got %+v", reloaded.Items)
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	product := productWithPrice("10.00", nil)
	svc := newTestService(t, storage, product)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "sess-a", product.ID, 1, nil); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	other, err := svc.Get(ctx, "sess-b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !other.IsEmpty() {
		t.Fatalf("expected isolated sessions, got %+v", other.Items)
	}
}
