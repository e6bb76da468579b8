package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Payment confirmation and fulfillment happen outside this
// service; awaiting_payment is the only status checkout ever writes.
const (
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusPaid            = "paid"
	OrderStatusCancelled       = "cancelled"
)

// Order is one submitted checkout with its customer, shipping address and
// payment display data.
type Order struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderRef           string          `gorm:"column:order_ref;not null;uniqueIndex" json:"orderRef"`
	CustomerName       string          `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerEmail      string          `gorm:"column:customer_email;not null" json:"customerEmail"`
	CustomerPhone      string          `gorm:"column:customer_phone;not null" json:"customerPhone"`
	CustomerTaxID      string          `gorm:"column:customer_tax_id;not null" json:"customerTaxId"`
	PostalCode         string          `gorm:"column:postal_code;not null" json:"postalCode"`
	Street             string          `gorm:"column:street;not null" json:"street"`
	Number             string          `gorm:"column:number;not null" json:"number"`
	Complement         *string         `gorm:"column:complement" json:"complement,omitempty"`
	Neighborhood       string          `gorm:"column:neighborhood;not null" json:"neighborhood"`
	City               string          `gorm:"column:city;not null" json:"city"`
	State              string          `gorm:"column:state;not null" json:"state"`
	ShippingOptionID   string          `gorm:"column:shipping_option_id;not null" json:"shippingOptionId"`
	ShippingOptionName string          `gorm:"column:shipping_option_name;not null" json:"shippingOptionName"`
	Subtotal           decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	ShippingPrice      decimal.Decimal `gorm:"column:shipping_price;type:numeric(10,2);not null" json:"shippingPrice"`
	Amount             decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	PaymentCode        string          `gorm:"column:payment_code;not null" json:"paymentCode"`
	PaymentQRURL       string          `gorm:"column:payment_qr_url;not null" json:"paymentQrUrl"`
	ExpiresAt          time.Time       `gorm:"column:expires_at;not null" json:"expiresAt"`
	Status             string          `gorm:"column:status;not null;default:'awaiting_payment'" json:"status"`
	Items              []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// OrderItem snapshots one cart line at submission time.
type OrderItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	ProductName string            `gorm:"column:product_name;not null" json:"productName"`
	Quantity    int               `gorm:"column:quantity;not null" json:"quantity"`
	Selection   map[string]string `gorm:"column:selection;type:jsonb;serializer:json" json:"selection"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unitPrice"`
	LineTotal   decimal.Decimal   `gorm:"column:line_total;type:numeric(10,2);not null" json:"lineTotal"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
