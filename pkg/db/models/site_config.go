package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteConfig is the singleton presentation/contact configuration row.
type SiteConfig struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	SiteName       string    `gorm:"column:site_name;not null" json:"siteName"`
	Logo           string    `gorm:"column:logo" json:"logo"`
	Favicon        string    `gorm:"column:favicon" json:"favicon"`
	Tagline        string    `gorm:"column:tagline" json:"tagline"`
	Description    string    `gorm:"column:description" json:"description"`
	PrimaryColor   string    `gorm:"column:primary_color" json:"primaryColor"`
	SecondaryColor string    `gorm:"column:secondary_color" json:"secondaryColor"`
	AccentColor    string    `gorm:"column:accent_color" json:"accentColor"`
	ContactEmail   string    `gorm:"column:contact_email" json:"contactEmail"`
	ContactPhone   string    `gorm:"column:contact_phone" json:"contactPhone"`
	ContactWhats   string    `gorm:"column:contact_whatsapp" json:"contactWhatsapp"`
	SocialInsta    string    `gorm:"column:social_instagram" json:"socialInstagram"`
	SocialFacebook string    `gorm:"column:social_facebook" json:"socialFacebook"`
	SocialTwitter  string    `gorm:"column:social_twitter" json:"socialTwitter"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// Checkout form modes. "steps" renders customer and address as separate
// steps; "direct" collapses them into one combined form before payment.
const (
	CheckoutModeSteps  = "steps"
	CheckoutModeDirect = "direct"
)

// CheckoutConfig is the singleton checkout-flow configuration row.
type CheckoutConfig struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	Mode               string          `gorm:"column:mode;not null;default:'steps'" json:"mode"`
	EnabledFields      map[string]bool `gorm:"column:enabled_fields;type:jsonb;serializer:json" json:"enabledFields"`
	OrderBumpsEnabled  bool            `gorm:"column:order_bumps_enabled;not null;default:true" json:"orderBumpsEnabled"`
	OrderBumpsPosition string          `gorm:"column:order_bumps_position;not null;default:'step1'" json:"orderBumpsPosition"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
