package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

// AdminService exposes the console's catalog write operations. A snapshot
// deployment constructs it without a Store and every write is rejected.
type AdminService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ToggleProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SetRelatedProducts(ctx context.Context, productID uuid.UUID, relatedIDs []uuid.UUID) error

	ListBanners(ctx context.Context) ([]models.Banner, error)
	CreateBanner(ctx context.Context, input BannerInput) (*models.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, input BannerInput) (*models.Banner, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error
	ToggleBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error)

	SiteConfig(ctx context.Context) (*models.SiteConfig, error)
	UpdateSiteConfig(ctx context.Context, cfg models.SiteConfig) (*models.SiteConfig, error)
	UpdateCheckoutConfig(ctx context.Context, cfg models.CheckoutConfig) (*models.CheckoutConfig, error)
}

// ProductInput carries the admin console's product form.
type ProductInput struct {
	Name          string                 `json:"name" validate:"required"`
	Slug          string                 `json:"slug"`
	Price         decimal.Decimal        `json:"price" validate:"required"`
	DiscountPrice *decimal.Decimal       `json:"discountPrice"`
	Category      string                 `json:"category" validate:"required"`
	Subcategory   string                 `json:"subcategory"`
	MainImage     string                 `json:"mainImage"`
	Images        []string               `json:"images"`
	Description   string                 `json:"description"`
	Variations    []models.VariationAxis `json:"variations"`
	Stock         int                    `json:"stock" validate:"min=0"`
	Active        *bool                  `json:"active"`
}

// BannerInput carries the admin console's banner form.
type BannerInput struct {
	Image    string `json:"image" validate:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Link     string `json:"link"`
	Position int    `json:"position" validate:"min=0"`
	Active   *bool  `json:"active"`
}

type adminService struct {
	store  Store
	source Source
}

// NewAdminService builds the console service. store may be nil for
// snapshot-backed deployments; reads then come from source and writes fail.
func NewAdminService(store Store, source Source) (AdminService, error) {
	if store == nil && source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog source required")
	}
	return &adminService{store: store, source: source}, nil
}

var errReadOnlySource = pkgerrors.New(pkgerrors.CodeValidation, "catalog source is read-only")

func (s *adminService) writable() (Store, error) {
	if s.store == nil {
		return nil, errReadOnlySource
	}
	return s.store, nil
}

func (s *adminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if s.store != nil {
		return s.store.AllProducts(ctx)
	}
	return s.source.ActiveProducts(ctx)
}

func (s *adminService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.DiscountPrice != nil && input.DiscountPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount price must be non-negative")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Name)
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Slug:          slug,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Category:      strings.TrimSpace(input.Category),
		Subcategory:   strings.TrimSpace(input.Subcategory),
		MainImage:     input.MainImage,
		Images:        pq.StringArray(input.Images),
		Description:   input.Description,
		Variations:    input.Variations,
		Stock:         input.Stock,
		Active:        active,
	}
	return store.CreateProduct(ctx, product)
}

func (s *adminService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	existing, err := s.source.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.DiscountPrice != nil && input.DiscountPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount price must be non-negative")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = existing.Slug
	}
	active := existing.Active
	if input.Active != nil {
		active = *input.Active
	}

	updated := &models.Product{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		Slug:          slug,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Category:      strings.TrimSpace(input.Category),
		Subcategory:   strings.TrimSpace(input.Subcategory),
		MainImage:     input.MainImage,
		Images:        pq.StringArray(input.Images),
		Description:   input.Description,
		Variations:    input.Variations,
		Stock:         input.Stock,
		Rating:        existing.Rating,
		ReviewCount:   existing.ReviewCount,
		Active:        active,
	}
	return store.UpdateProduct(ctx, updated)
}

func (s *adminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	store, err := s.writable()
	if err != nil {
		return err
	}
	return store.DeleteProduct(ctx, id)
}

func (s *adminService) ToggleProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	existing, err := s.source.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.SetProductActive(ctx, id, !existing.Active); err != nil {
		return nil, err
	}
	return s.source.ProductByID(ctx, id)
}

func (s *adminService) SetRelatedProducts(ctx context.Context, productID uuid.UUID, relatedIDs []uuid.UUID) error {
	store, err := s.writable()
	if err != nil {
		return err
	}
	if _, err := s.source.ProductByID(ctx, productID); err != nil {
		return err
	}
	for _, id := range relatedIDs {
		if id == productID {
			return pkgerrors.New(pkgerrors.CodeValidation, "product cannot relate to itself")
		}
	}
	return store.ReplaceRelatedProducts(ctx, productID, relatedIDs)
}

func (s *adminService) ListBanners(ctx context.Context) ([]models.Banner, error) {
	if s.store != nil {
		return s.store.AllBanners(ctx)
	}
	return s.source.ActiveBanners(ctx)
}

func (s *adminService) CreateBanner(ctx context.Context, input BannerInput) (*models.Banner, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	banner := &models.Banner{
		Image:    input.Image,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Link:     input.Link,
		Position: input.Position,
		Active:   active,
	}
	return store.CreateBanner(ctx, banner)
}

func (s *adminService) UpdateBanner(ctx context.Context, id uuid.UUID, input BannerInput) (*models.Banner, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	banner := &models.Banner{
		ID:       id,
		Image:    input.Image,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Link:     input.Link,
		Position: input.Position,
		Active:   active,
	}
	return store.UpdateBanner(ctx, banner)
}

func (s *adminService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	store, err := s.writable()
	if err != nil {
		return err
	}
	return store.DeleteBanner(ctx, id)
}

func (s *adminService) ToggleBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	banners, err := store.AllBanners(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range banners {
		if b.ID == id {
			if err := store.SetBannerActive(ctx, id, !b.Active); err != nil {
				return nil, err
			}
			b.Active = !b.Active
			return &b, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
}

func (s *adminService) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	return s.source.SiteConfig(ctx)
}

func (s *adminService) UpdateSiteConfig(ctx context.Context, cfg models.SiteConfig) (*models.SiteConfig, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.SiteName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
	}
	return store.UpdateSiteConfig(ctx, &cfg)
}

func (s *adminService) UpdateCheckoutConfig(ctx context.Context, cfg models.CheckoutConfig) (*models.CheckoutConfig, error) {
	store, err := s.writable()
	if err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case models.CheckoutModeSteps, models.CheckoutModeDirect:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout mode")
	}
	return store.UpdateCheckoutConfig(ctx, &cfg)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses runs of non-alphanumerics to a
// single dash.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}
