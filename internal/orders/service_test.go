package orders

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/i9team/guilherme-ecommerce/pkg/config"
	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

type stubStore struct {
	created   []*models.Order
	createErr error
}

func (s *stubStore) Create(_ context.Context, _ *gorm.DB, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, order)
	return nil
}

func (s *stubStore) List(context.Context, int, int) ([]models.Order, error) {
	out := make([]models.Order, 0, len(s.created))
	for _, o := range s.created {
		out = append(out, *o)
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func validSubmission() Submission {
	return Submission{
		CustomerName:       "Maria Silva",
		CustomerEmail:      "maria@example.com",
		CustomerPhone:      "11999998888",
		CustomerTaxID:      "12345678909",
		PostalCode:         "01310100",
		Street:             "Avenida Paulista",
		Number:             "1000",
		Neighborhood:       "Bela Vista",
		City:               "Sao Paulo",
		State:              "SP",
		ShippingOptionID:   "sedex",
		ShippingOptionName: "Sedex",
		ShippingPrice:      decimal.RequireFromString("25.00"),
		Subtotal:           decimal.RequireFromString("199.80"),
		Items: []SubmissionItem{
			{
				ProductID:   uuid.New(),
				ProductName: "Camiseta",
				Quantity:    2,
				Selection:   map[string]string{"size": "M"},
				UnitPrice:   decimal.RequireFromString("99.90"),
			},
		},
	}
}

func newTestService(t *testing.T, store orderStore, issuedAt time.Time) Service {
	t.Helper()
	svc, err := NewService(store, passthroughTx{}, config.PaymentConfig{Expiry: 30 * time.Minute})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.(*service).now = func() time.Time { return issuedAt }
	return svc
}

func TestSubmitBuildsPaymentDescriptor(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &stubStore{}
	svc := newTestService(t, store, issuedAt)

	descriptor, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	wantRef := "ORD-" + "1773144000000"
	if descriptor.OrderRef != wantRef {
		t.Fatalf("order ref = %q, want %q", descriptor.OrderRef, wantRef)
	}
	if !strings.HasPrefix(descriptor.Code, "00020126580014br.gov.bcb.pix0136") {
		t.Fatalf("unexpected payment code %q", descriptor.Code)
	}
	if !strings.HasSuffix(descriptor.Code, descriptor.OrderRef) {
		t.Fatalf("payment code should embed the order ref: %q", descriptor.Code)
	}
	if !descriptor.Amount.Equal(decimal.RequireFromString("224.80")) {
		t.Fatalf("amount = %s, want subtotal + shipping", descriptor.Amount)
	}
	if !descriptor.ExpiresAt.Equal(issuedAt.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %s", descriptor.ExpiresAt)
	}

	parsed, err := url.Parse(descriptor.QRURL)
	if err != nil {
		t.Fatalf("qr url: %v", err)
	}
	if parsed.Query().Get("data") != descriptor.Code {
		t.Fatalf("qr url should carry the encoded payment code, got %q", descriptor.QRURL)
	}
}

func TestSubmitPersistsOrderWithItems(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := newTestService(t, store, time.Now())

	if _, err := svc.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(store.created))
	}

	order := store.created[0]
	if order.Status != models.OrderStatusAwaitingPayment {
		t.Fatalf("status = %q", order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(order.Items))
	}
	if !order.Items[0].LineTotal.Equal(decimal.RequireFromString("199.80")) {
		t.Fatalf("line total = %s", order.Items[0].LineTotal)
	}
	if order.Complement != nil {
		t.Fatalf("empty complement should persist as null")
	}
}

func TestSubmitRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubStore{}, time.Now())

	sub := validSubmission()
	sub.Items = nil
	_, err := svc.Submit(context.Background(), sub)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	store := &stubStore{createErr: errors.New("connection reset")}
	svc := newTestService(t, store, time.Now())

	if _, err := svc.Submit(context.Background(), validSubmission()); err == nil {
		t.Fatalf("expected store failure to propagate")
	}
}
