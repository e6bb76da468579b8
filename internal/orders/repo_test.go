package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_ref TEXT NOT NULL UNIQUE,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_tax_id TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  street TEXT NOT NULL,
  number TEXT NOT NULL,
  complement TEXT,
  neighborhood TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  shipping_option_id TEXT NOT NULL,
  shipping_option_name TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  shipping_price TEXT NOT NULL,
  amount TEXT NOT NULL,
  payment_code TEXT NOT NULL,
  payment_qr_url TEXT NOT NULL,
  expires_at DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'awaiting_payment',
  created_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  selection TEXT,
  unit_price TEXT NOT NULL,
  line_total TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func testOrder(ref string, createdAt time.Time) *models.Order {
	price := decimal.RequireFromString("99.90")
	return &models.Order{
		ID:                 uuid.New(),
		OrderRef:           ref,
		CustomerName:       "Guilherme Souza",
		CustomerEmail:      "guilherme@example.com",
		CustomerPhone:      "+5511987654321",
		CustomerTaxID:      "12345678901",
		PostalCode:         "01310100",
		Street:             "Avenida Paulista",
		Number:             "1000",
		Neighborhood:       "Bela Vista",
		City:               "São Paulo",
		State:              "SP",
		ShippingOptionID:   "sedex",
		ShippingOptionName: "SEDEX",
		Subtotal:           price,
		ShippingPrice:      decimal.RequireFromString("25.00"),
		Amount:             decimal.RequireFromString("124.90"),
		PaymentCode:        "00020126580014br.gov.bcb.pix0136" + ref,
		PaymentQRURL:       "https://api.qrserver.com/v1/create-qr-code/?data=x",
		ExpiresAt:          createdAt.Add(30 * time.Minute),
		Status:             models.OrderStatusAwaitingPayment,
		CreatedAt:          createdAt,
		Items: []models.OrderItem{{
			ID:          uuid.New(),
			ProductID:   uuid.New(),
			ProductName: "Camiseta Essencial",
			Quantity:    1,
			Selection:   map[string]string{"size": "M"},
			UnitPrice:   price,
			LineTotal:   price,
		}},
	}
}

func TestRepositoryCreateAndList(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := testOrder("ORD-1", time.Now().Add(-time.Hour))
	newer := testOrder("ORD-2", time.Now())
	require.NoError(t, repo.Create(ctx, nil, older))
	require.NoError(t, repo.Create(ctx, nil, newer))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "ORD-2", list[0].OrderRef)
	assert.Equal(t, "ORD-1", list[1].OrderRef)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, "Camiseta Essencial", list[0].Items[0].ProductName)
	assert.Equal(t, map[string]string{"size": "M"}, list[0].Items[0].Selection)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("124.90")))
}

func TestRepositoryListPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, nil, testOrder("ORD-p"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))))
	}

	first, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)

	rest, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestRepositoryCreateInsideTx(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, testOrder("ORD-tx", time.Now()))
	})
	require.NoError(t, err)

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ORD-tx", list[0].OrderRef)
}
