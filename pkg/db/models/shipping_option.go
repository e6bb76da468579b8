package models

import "github.com/shopspring/decimal"

// ShippingOption is one deliverable rate. MinPurchase, when set, hides the
// option until the cart subtotal reaches it.
type ShippingOption struct {
	ID           string           `gorm:"column:id;primaryKey" json:"id"`
	Name         string           `gorm:"column:name;not null" json:"name"`
	DeliveryTime string           `gorm:"column:delivery_time" json:"deliveryTime"`
	Price        decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	MinPurchase  *decimal.Decimal `gorm:"column:min_purchase;type:numeric(10,2)" json:"minPurchase,omitempty"`
	Position     int              `gorm:"column:position;not null;default:0" json:"-"`
}

// AvailableFor reports whether the option survives filtering at the given
// cart subtotal.
func (o ShippingOption) AvailableFor(subtotal decimal.Decimal) bool {
	if o.MinPurchase == nil {
		return true
	}
	return subtotal.GreaterThanOrEqual(*o.MinPurchase)
}
