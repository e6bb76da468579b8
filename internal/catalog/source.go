package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

// Source abstracts where storefront content comes from: the live database or
// a static JSON snapshot. All reads return only what the storefront may show
// (active rows, position/recency ordering).
type Source interface {
	ActiveProducts(ctx context.Context) ([]models.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RelatedProducts(ctx context.Context, productID uuid.UUID) ([]models.Product, error)
	ReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ActiveBanners(ctx context.Context) ([]models.Banner, error)
	ShippingOptions(ctx context.Context) ([]models.ShippingOption, error)
	SiteConfig(ctx context.Context) (*models.SiteConfig, error)
	CheckoutConfig(ctx context.Context) (*models.CheckoutConfig, error)
}

// Store is the write side of the catalog, implemented only by the database
// repository. A snapshot-backed deployment has no Store.
type Store interface {
	AllProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error

	AllBanners(ctx context.Context) ([]models.Banner, error)
	CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error)
	UpdateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	SetBannerActive(ctx context.Context, id uuid.UUID, active bool) error

	ReplaceRelatedProducts(ctx context.Context, productID uuid.UUID, relatedIDs []uuid.UUID) error
	UpdateSiteConfig(ctx context.Context, cfg *models.SiteConfig) (*models.SiteConfig, error)
	UpdateCheckoutConfig(ctx context.Context, cfg *models.CheckoutConfig) (*models.CheckoutConfig, error)
}
