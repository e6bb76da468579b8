package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// VariationAxis is one configurable axis on a product (e.g. size, color) with
// its ordered option list.
type VariationAxis struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Product represents a catalog listing. Line items copy it by value, so price
// edits in the catalog never reach carts retroactively.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)" json:"discountPrice,omitempty"`
	Category      string           `gorm:"column:category;not null" json:"category"`
	Subcategory   string           `gorm:"column:subcategory;not null" json:"subcategory"`
	MainImage     string           `gorm:"column:main_image" json:"mainImage"`
	Images        pq.StringArray   `gorm:"column:images;type:text[]" json:"images"`
	Description   string           `gorm:"column:description" json:"description"`
	Variations    []VariationAxis  `gorm:"column:variations;type:jsonb;serializer:json" json:"variations"`
	Stock         int              `gorm:"column:stock;not null;default:0" json:"stock"`
	Rating        float64          `gorm:"column:rating;type:numeric(3,2);not null;default:0" json:"rating"`
	ReviewCount   int              `gorm:"column:review_count;not null;default:0" json:"reviewCount"`
	Active        bool             `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// EffectivePrice is the price a line item pays: the discount price when set,
// the base price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// DefaultSelection picks the first option of every variation axis.
func (p Product) DefaultSelection() map[string]string {
	if len(p.Variations) == 0 {
		return map[string]string{}
	}
	selection := make(map[string]string, len(p.Variations))
	for _, axis := range p.Variations {
		if len(axis.Options) > 0 {
			selection[axis.Type] = axis.Options[0]
		}
	}
	return selection
}
