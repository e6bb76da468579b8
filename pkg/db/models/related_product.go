package models

import "github.com/google/uuid"

// RelatedProduct maps a product to one cross-sell candidate.
type RelatedProduct struct {
	ProductID        uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey" json:"productId"`
	RelatedProductID uuid.UUID `gorm:"column:related_product_id;type:uuid;primaryKey" json:"relatedProductId"`
	Position         int       `gorm:"column:position;not null;default:0" json:"position"`
}
