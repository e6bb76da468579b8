package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/i9team/guilherme-ecommerce/api/controllers"
	"github.com/i9team/guilherme-ecommerce/api/middleware"
	"github.com/i9team/guilherme-ecommerce/internal/address"
	"github.com/i9team/guilherme-ecommerce/internal/auth"
	cartsvc "github.com/i9team/guilherme-ecommerce/internal/cart"
	"github.com/i9team/guilherme-ecommerce/internal/catalog"
	checkoutsvc "github.com/i9team/guilherme-ecommerce/internal/checkout"
	"github.com/i9team/guilherme-ecommerce/internal/orders"
	"github.com/i9team/guilherme-ecommerce/pkg/config"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
	"github.com/i9team/guilherme-ecommerce/pkg/metrics"
)

// Deps carries everything the router hands to controllers. nil services
// are tolerated: their endpoints answer with an internal error instead of
// panicking at wire-up time.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB    controllers.Pinger
	Redis controllers.Pinger

	Catalog      catalog.Service
	AdminCatalog catalog.AdminService
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Address      *address.Client
	Auth         auth.Service
	Orders       orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg, cfg.App.IsProd()))

		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(deps.Catalog, logg))
		r.Get("/products/{id}/related", controllers.GetRelatedProducts(deps.Catalog, logg))
		r.Get("/products/{id}/reviews", controllers.GetProductReviews(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/banners", controllers.ListBanners(deps.Catalog, logg))
		r.Get("/site-config", controllers.GetSiteConfig(deps.Catalog, logg))
		r.Get("/checkout-config", controllers.GetCheckoutConfig(deps.Catalog, logg))
		r.Get("/shipping-options", controllers.ListShippingOptions(deps.Catalog, logg))

		r.Get("/address/{postalCode}", controllers.LookupAddress(deps.Address, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items", controllers.RemoveCartItem(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.BeginCheckout(deps.Checkout, logg))
			r.Get("/", controllers.GetCheckout(deps.Checkout, logg))
			r.Put("/customer", controllers.UpdateCheckoutCustomer(deps.Checkout, logg))
			r.Put("/address", controllers.UpdateCheckoutAddress(deps.Checkout, logg))
			r.Put("/shipping", controllers.SelectCheckoutShipping(deps.Checkout, logg))
			r.Post("/bumps/{productID}", controllers.AcceptCheckoutBump(deps.Checkout, logg))
			r.Post("/submit", controllers.SubmitCheckout(deps.Checkout, logg))
			r.Post("/complete", controllers.CompleteCheckout(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.Auth, logg))
		r.Post("/auth/logout", controllers.AdminLogout(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(deps.Auth, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.AdminCatalog, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.AdminCatalog, logg))
				r.Put("/{id}", controllers.AdminUpdateProduct(deps.AdminCatalog, logg))
				r.Delete("/{id}", controllers.AdminDeleteProduct(deps.AdminCatalog, logg))
				r.Post("/{id}/toggle", controllers.AdminToggleProduct(deps.AdminCatalog, logg))
				r.Put("/{id}/related", controllers.AdminSetRelatedProducts(deps.AdminCatalog, logg))
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", controllers.AdminListBanners(deps.AdminCatalog, logg))
				r.Post("/", controllers.AdminCreateBanner(deps.AdminCatalog, logg))
				r.Put("/{id}", controllers.AdminUpdateBanner(deps.AdminCatalog, logg))
				r.Delete("/{id}", controllers.AdminDeleteBanner(deps.AdminCatalog, logg))
				r.Post("/{id}/toggle", controllers.AdminToggleBanner(deps.AdminCatalog, logg))
			})

			r.Get("/site-config", controllers.AdminGetSiteConfig(deps.AdminCatalog, logg))
			r.Put("/site-config", controllers.AdminUpdateSiteConfig(deps.AdminCatalog, logg))
			r.Put("/checkout-config", controllers.AdminUpdateCheckoutConfig(deps.AdminCatalog, logg))

			r.Get("/orders", controllers.AdminListOrders(deps.Orders, logg))
		})
	})

	return r
}
