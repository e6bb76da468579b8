package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/i9team/guilherme-ecommerce/api/controllers"
	"github.com/i9team/guilherme-ecommerce/api/routes"
	"github.com/i9team/guilherme-ecommerce/internal/address"
	"github.com/i9team/guilherme-ecommerce/internal/auth"
	cartsvc "github.com/i9team/guilherme-ecommerce/internal/cart"
	"github.com/i9team/guilherme-ecommerce/internal/catalog"
	checkoutsvc "github.com/i9team/guilherme-ecommerce/internal/checkout"
	"github.com/i9team/guilherme-ecommerce/internal/orders"
	"github.com/i9team/guilherme-ecommerce/pkg/config"
	"github.com/i9team/guilherme-ecommerce/pkg/db"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
	"github.com/i9team/guilherme-ecommerce/pkg/metrics"
	"github.com/i9team/guilherme-ecommerce/pkg/migrate"
	"github.com/i9team/guilherme-ecommerce/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// Snapshot deployments may run without a database; everything that
	// needs one (orders, admin writes) then answers read-only/unavailable.
	var dbClient *db.Client
	if cfg.DB.DSN != "" || !cfg.Catalog.UseSnapshot() {
		dbClient, err = db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var (
		source catalog.Source
		store  catalog.Store
	)
	if cfg.Catalog.UseSnapshot() {
		snap, err := catalog.LoadSnapshot(cfg.Catalog.SnapshotDir)
		if err != nil {
			logg.Error(context.Background(), "failed to load catalog snapshot", err)
			os.Exit(1)
		}
		source = snap
	} else {
		repo := catalog.NewRepository(dbClient.DB())
		source = repo
		store = repo
	}

	catalogService, err := catalog.NewService(source)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	adminCatalogService, err := catalog.NewAdminService(store, source)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin catalog service", err)
		os.Exit(1)
	}

	cartStorage, err := cartsvc.NewRedisStorage(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStorage, catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	addressClient := address.NewClient(
		address.WithBaseURL(cfg.Address.BaseURL),
		address.WithHTTPClient(&http.Client{Timeout: cfg.Address.Timeout}),
	)

	var ordersService orders.Service
	var checkoutService checkoutsvc.Service
	if dbClient != nil {
		ordersService, err = orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, cfg.Payment)
		if err != nil {
			logg.Error(context.Background(), "failed to create orders service", err)
			os.Exit(1)
		}
		checkoutService, err = checkoutsvc.NewService(cartService, catalogService, addressClient, ordersService, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create checkout service", err)
			os.Exit(1)
		}
	}

	authService, err := auth.NewService(cfg.Admin, cfg.JWT, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	var dbPinger controllers.Pinger
	if dbClient != nil {
		dbPinger = dbClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Metrics:      httpMetrics,
			DB:           dbPinger,
			Redis:        redisClient,
			Catalog:      catalogService,
			AdminCatalog: adminCatalogService,
			Cart:         cartService,
			Checkout:     checkoutService,
			Address:      addressClient,
			Auth:         authService,
			Orders:       ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
