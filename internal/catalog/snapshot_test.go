package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

func writeSnapshotDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func fullSnapshotFiles(activeID, hiddenID uuid.UUID) map[string]string {
	return map[string]string{
		"products.json": `[
			{"id":"` + activeID.String() + `","name":"Camiseta","slug":"camiseta","price":"99.90","category":"roupas","subcategory":"camisetas","active":true},
			{"id":"` + hiddenID.String() + `","name":"Oculta","slug":"oculta","price":"10.00","category":"roupas","subcategory":"camisetas","active":false}
		]`,
		"banners.json": `[
			{"id":"` + uuid.NewString() + `","image":"b2.jpg","position":2,"active":true},
			{"id":"` + uuid.NewString() + `","image":"b1.jpg","position":1,"active":true},
			{"id":"` + uuid.NewString() + `","image":"off.jpg","position":0,"active":false}
		]`,
		"reviews.json": `[
			{"id":"` + uuid.NewString() + `","productId":"` + activeID.String() + `","userName":"Maria","rating":5,"date":"2025-11-02T00:00:00Z"}
		]`,
		"related-products.json": `[
			{"productId":"` + activeID.String() + `","relatedProductId":"` + hiddenID.String() + `","position":0}
		]`,
		"shipping.json":        `[{"id":"sedex","name":"Sedex","price":"25.00"}]`,
		"site-config.json":     `{"siteName":"Loja"}`,
		"checkout-config.json": `{"mode":"steps","orderBumpsEnabled":true}`,
	}
}

func TestLoadSnapshotServesActiveContent(t *testing.T) {
	t.Parallel()

	activeID, hiddenID := uuid.New(), uuid.New()
	dir := writeSnapshotDir(t, fullSnapshotFiles(activeID, hiddenID))

	snap, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	ctx := context.Background()

	products, err := snap.ActiveProducts(ctx)
	if err != nil {
		t.Fatalf("ActiveProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != activeID {
		t.Fatalf("expected only the active product, got %+v", products)
	}

	if _, err := snap.ProductBySlug(ctx, "oculta"); err == nil {
		t.Fatalf("expected inactive product to be hidden by slug")
	}
	if _, err := snap.ProductBySlug(ctx, "CAMISETA"); err != nil {
		t.Fatalf("slug lookup should be case-insensitive: %v", err)
	}

	// Inactive related targets are filtered out.
	related, err := snap.RelatedProducts(ctx, activeID)
	if err != nil {
		t.Fatalf("RelatedProducts: %v", err)
	}
	if len(related) != 0 {
		t.Fatalf("expected inactive related product filtered, got %+v", related)
	}

	banners, err := snap.ActiveBanners(ctx)
	if err != nil {
		t.Fatalf("ActiveBanners: %v", err)
	}
	if len(banners) != 2 || banners[0].Image != "b1.jpg" {
		t.Fatalf("expected active banners sorted by position, got %+v", banners)
	}

	reviews, err := snap.ReviewsByProduct(ctx, activeID)
	if err != nil {
		t.Fatalf("ReviewsByProduct: %v", err)
	}
	if len(reviews) != 1 || reviews[0].UserName != "Maria" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestLoadSnapshotAggregatesMissingFiles(t *testing.T) {
	t.Parallel()

	// Only one of the seven files present: the error should name the rest.
	dir := writeSnapshotDir(t, map[string]string{
		"products.json": `[]`,
	})

	_, err := LoadSnapshot(dir)
	if err == nil {
		t.Fatalf("expected load failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	cause := typed.Unwrap()
	if cause == nil {
		t.Fatalf("expected aggregated cause")
	}
	for _, name := range []string{"banners.json", "shipping.json", "site-config.json"} {
		if !strings.Contains(cause.Error(), name) {
			t.Fatalf("expected cause to mention %s, got %v", name, cause)
		}
	}
}

func TestLoadSnapshotRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	activeID, hiddenID := uuid.New(), uuid.New()
	files := fullSnapshotFiles(activeID, hiddenID)
	files["banners.json"] = `{not json`
	dir := writeSnapshotDir(t, files)

	_, err := LoadSnapshot(dir)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Unwrap() == nil || !strings.Contains(typed.Unwrap().Error(), "banners.json") {
		t.Fatalf("expected banners.json parse failure, got %v", err)
	}
}
