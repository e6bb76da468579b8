package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

// Service exposes storefront catalog reads.
type Service interface {
	ListProducts(ctx context.Context, query, category string) ([]models.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RelatedProducts(ctx context.Context, productID uuid.UUID) ([]models.Product, error)
	ReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	Banners(ctx context.Context) ([]models.Banner, error)
	Categories(ctx context.Context) ([]Category, error)
	ShippingOptionsFor(ctx context.Context, subtotal decimal.Decimal) ([]models.ShippingOption, error)
	SiteConfig(ctx context.Context) (*models.SiteConfig, error)
	CheckoutConfig(ctx context.Context) (*models.CheckoutConfig, error)
}

// Category groups the active catalog's subcategories under their category.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type service struct {
	source Source
}

// NewService builds the storefront read service over the configured source.
func NewService(source Source) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &service{source: source}, nil
}

// ListProducts returns active products, optionally narrowed by free-text
// search and category.
func (s *service) ListProducts(ctx context.Context, query, category string) ([]models.Product, error) {
	products, err := s.source.ActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))
	if query == "" && category == "" {
		return products, nil
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesQuery(p models.Product, query string) bool {
	for _, field := range []string{p.Name, p.Category, p.Subcategory, p.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (s *service) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.source.ProductBySlug(ctx, slug)
}

func (s *service) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.source.ProductByID(ctx, id)
}

func (s *service) RelatedProducts(ctx context.Context, productID uuid.UUID) ([]models.Product, error) {
	return s.source.RelatedProducts(ctx, productID)
}

func (s *service) ReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.source.ReviewsByProduct(ctx, productID)
}

func (s *service) Banners(ctx context.Context) ([]models.Banner, error) {
	return s.source.ActiveBanners(ctx)
}

// Categories derives the category tree from the active catalog.
func (s *service) Categories(ctx context.Context) ([]Category, error) {
	products, err := s.source.ActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	subsByCategory := map[string]map[string]struct{}{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if subsByCategory[p.Category] == nil {
			subsByCategory[p.Category] = map[string]struct{}{}
		}
		if p.Subcategory != "" {
			subsByCategory[p.Category][p.Subcategory] = struct{}{}
		}
	}

	out := make([]Category, 0, len(subsByCategory))
	for name, subs := range subsByCategory {
		cat := Category{Name: name, Subcategories: make([]string, 0, len(subs))}
		for sub := range subs {
			cat.Subcategories = append(cat.Subcategories, sub)
		}
		sort.Strings(cat.Subcategories)
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ShippingOptionsFor returns the options available at the given subtotal,
// in display order. The first surviving option is the caller's default.
func (s *service) ShippingOptionsFor(ctx context.Context, subtotal decimal.Decimal) ([]models.ShippingOption, error) {
	options, err := s.source.ShippingOptions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ShippingOption, 0, len(options))
	for _, o := range options {
		if o.AvailableFor(subtotal) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *service) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	return s.source.SiteConfig(ctx)
}

func (s *service) CheckoutConfig(ctx context.Context) (*models.CheckoutConfig, error) {
	return s.source.CheckoutConfig(ctx)
}
