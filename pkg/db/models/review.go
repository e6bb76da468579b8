package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Review is customer feedback attached to a product.
type Review struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index" json:"productId"`
	UserName   string         `gorm:"column:user_name;not null" json:"userName"`
	Location   *string        `gorm:"column:location" json:"location,omitempty"`
	Rating     int            `gorm:"column:rating;not null" json:"rating"`
	Comment    string         `gorm:"column:comment" json:"comment"`
	ReviewDate time.Time      `gorm:"column:review_date;not null" json:"date"`
	Images     pq.StringArray `gorm:"column:images;type:text[]" json:"images"`
	Verified   bool           `gorm:"column:verified;not null;default:false" json:"verified"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
}
