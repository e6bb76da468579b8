package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/i9team/guilherme-ecommerce/pkg/config"
	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

// pixCodePrefix is the static EMV header the storefront renders into the
// copy-paste payment field.
const pixCodePrefix = "00020126580014br.gov.bcb.pix0136"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderStore interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	List(ctx context.Context, limit, offset int) ([]models.Order, error)
}

// SubmissionItem snapshots one cart line for persistence.
type SubmissionItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Selection   map[string]string
	UnitPrice   decimal.Decimal
}

// Submission is everything checkout hands over on submit.
type Submission struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerTaxID string

	PostalCode   string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string

	ShippingOptionID   string
	ShippingOptionName string
	ShippingPrice      decimal.Decimal

	Subtotal decimal.Decimal
	Items    []SubmissionItem
}

// PaymentDescriptor is what the payment step renders: the order reference,
// the copy-paste code, the QR image URL, the charged amount and its expiry.
type PaymentDescriptor struct {
	OrderRef  string          `json:"orderRef"`
	Code      string          `json:"code"`
	QRURL     string          `json:"qrUrl"`
	Amount    decimal.Decimal `json:"amount"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Service persists submissions and issues payment descriptors. Submit is
// one-shot and non-idempotent: the caller guards against double submission.
type Service interface {
	Submit(ctx context.Context, sub Submission) (*PaymentDescriptor, error)
	List(ctx context.Context, limit, offset int) ([]models.Order, error)
}

type service struct {
	store orderStore
	tx    txRunner
	cfg   config.PaymentConfig
	now   func() time.Time
}

// NewService builds the order service.
func NewService(store orderStore, tx txRunner, cfg config.PaymentConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{store: store, tx: tx, cfg: cfg, now: time.Now}, nil
}

// Submit validates the submission, writes order + items atomically and
// returns the payment descriptor. The amount is derived from the submission
// totals, never trusted from the client.
func (s *service) Submit(ctx context.Context, sub Submission) (*PaymentDescriptor, error) {
	if len(sub.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if sub.Subtotal.IsNegative() || sub.ShippingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order totals must be non-negative")
	}

	issuedAt := s.now()
	descriptor := s.buildDescriptor(issuedAt, sub.Subtotal.Add(sub.ShippingPrice))

	order := &models.Order{
		OrderRef:           descriptor.OrderRef,
		CustomerName:       sub.CustomerName,
		CustomerEmail:      sub.CustomerEmail,
		CustomerPhone:      sub.CustomerPhone,
		CustomerTaxID:      sub.CustomerTaxID,
		PostalCode:         sub.PostalCode,
		Street:             sub.Street,
		Number:             sub.Number,
		Neighborhood:       sub.Neighborhood,
		City:               sub.City,
		State:              sub.State,
		ShippingOptionID:   sub.ShippingOptionID,
		ShippingOptionName: sub.ShippingOptionName,
		Subtotal:           sub.Subtotal,
		ShippingPrice:      sub.ShippingPrice,
		Amount:             descriptor.Amount,
		PaymentCode:        descriptor.Code,
		PaymentQRURL:       descriptor.QRURL,
		ExpiresAt:          descriptor.ExpiresAt,
		Status:             models.OrderStatusAwaitingPayment,
	}
	if c := strings.TrimSpace(sub.Complement); c != "" {
		order.Complement = &c
	}

	for _, item := range sub.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Selection:   item.Selection,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.store.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return descriptor, nil
}

func (s *service) buildDescriptor(issuedAt time.Time, amount decimal.Decimal) *PaymentDescriptor {
	orderRef := fmt.Sprintf("ORD-%d", issuedAt.UnixMilli())
	code := pixCodePrefix + orderRef

	expiry := s.cfg.Expiry
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}

	return &PaymentDescriptor{
		OrderRef:  orderRef,
		Code:      code,
		QRURL:     s.qrURL(code),
		Amount:    amount,
		ExpiresAt: issuedAt.Add(expiry),
	}
}

func (s *service) qrURL(code string) string {
	base := s.cfg.QRBaseURL
	if base == "" {
		base = "https://api.qrserver.com/v1/create-qr-code/"
	}
	size := s.cfg.QRSize
	if size == "" {
		size = "300x300"
	}
	params := url.Values{}
	params.Set("size", size)
	params.Set("data", code)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return s.store.List(ctx, limit, offset)
}
