package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a storefront hero/promo slot, ordered by position.
type Banner struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Image     string    `gorm:"column:image;not null" json:"image"`
	Title     string    `gorm:"column:title" json:"title"`
	Subtitle  string    `gorm:"column:subtitle" json:"subtitle"`
	Link      string    `gorm:"column:link" json:"link"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
