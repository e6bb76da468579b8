package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

// Snapshot files expected in the snapshot directory.
const (
	snapshotProducts       = "products.json"
	snapshotBanners        = "banners.json"
	snapshotReviews        = "reviews.json"
	snapshotRelated        = "related-products.json"
	snapshotShipping       = "shipping.json"
	snapshotSiteConfig     = "site-config.json"
	snapshotCheckoutConfig = "checkout-config.json"
)

// Snapshot serves catalog reads from a static JSON directory loaded once at
// startup. It is immutable after construction, so reads need no locking.
type Snapshot struct {
	products       []models.Product
	productsBySlug map[string]models.Product
	productsByID   map[uuid.UUID]models.Product
	reviews        map[uuid.UUID][]models.Review
	related        map[uuid.UUID][]uuid.UUID
	banners        []models.Banner
	shipping       []models.ShippingOption
	siteConfig     *models.SiteConfig
	checkoutConfig *models.CheckoutConfig
}

// LoadSnapshot reads every snapshot file from dir. Missing or malformed files
// are aggregated so one pass reports everything wrong with the directory.
func LoadSnapshot(dir string) (*Snapshot, error) {
	s := &Snapshot{
		productsBySlug: map[string]models.Product{},
		productsByID:   map[uuid.UUID]models.Product{},
		reviews:        map[uuid.UUID][]models.Review{},
		related:        map[uuid.UUID][]uuid.UUID{},
	}

	var relatedRows []models.RelatedProduct
	var reviewRows []models.Review

	var errs error
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotProducts, &s.products))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotBanners, &s.banners))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotReviews, &reviewRows))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotRelated, &relatedRows))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotShipping, &s.shipping))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotSiteConfig, &s.siteConfig))
	errs = multierr.Append(errs, readSnapshotFile(dir, snapshotCheckoutConfig, &s.checkoutConfig))
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "load catalog snapshot")
	}

	sort.SliceStable(s.banners, func(i, j int) bool { return s.banners[i].Position < s.banners[j].Position })
	sort.SliceStable(s.shipping, func(i, j int) bool { return s.shipping[i].Position < s.shipping[j].Position })

	for _, p := range s.products {
		s.productsBySlug[strings.ToLower(p.Slug)] = p
		s.productsByID[p.ID] = p
	}
	for _, rv := range reviewRows {
		s.reviews[rv.ProductID] = append(s.reviews[rv.ProductID], rv)
	}
	for _, rel := range relatedRows {
		s.related[rel.ProductID] = append(s.related[rel.ProductID], rel.RelatedProductID)
	}

	return s, nil
}

func readSnapshotFile(dir, name string, dest any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *Snapshot) ActiveProducts(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Snapshot) ProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	p, ok := s.productsBySlug[strings.ToLower(slug)]
	if !ok || !p.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *Snapshot) ProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.productsByID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *Snapshot) RelatedProducts(_ context.Context, productID uuid.UUID) ([]models.Product, error) {
	ids := s.related[productID]
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.productsByID[id]; ok && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Snapshot) ReviewsByProduct(_ context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.reviews[productID], nil
}

func (s *Snapshot) ActiveBanners(_ context.Context) ([]models.Banner, error) {
	out := make([]models.Banner, 0, len(s.banners))
	for _, b := range s.banners {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Snapshot) ShippingOptions(_ context.Context) ([]models.ShippingOption, error) {
	return s.shipping, nil
}

func (s *Snapshot) SiteConfig(_ context.Context) (*models.SiteConfig, error) {
	if s.siteConfig == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "site config not set")
	}
	return s.siteConfig, nil
}

func (s *Snapshot) CheckoutConfig(_ context.Context) (*models.CheckoutConfig, error) {
	if s.checkoutConfig == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout config not set")
	}
	return s.checkoutConfig, nil
}
