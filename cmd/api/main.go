package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/timelessstrands/storefront-backend/api/routes"
	"github.com/timelessstrands/storefront-backend/internal/auth"
	"github.com/timelessstrands/storefront-backend/internal/cart"
	"github.com/timelessstrands/storefront-backend/internal/catalog"
	"github.com/timelessstrands/storefront-backend/internal/checkout"
	"github.com/timelessstrands/storefront-backend/internal/customers"
	"github.com/timelessstrands/storefront-backend/internal/media"
	"github.com/timelessstrands/storefront-backend/internal/orders"
	"github.com/timelessstrands/storefront-backend/internal/settings"
	"github.com/timelessstrands/storefront-backend/pkg/auth/session"
	"github.com/timelessstrands/storefront-backend/pkg/config"
	"github.com/timelessstrands/storefront-backend/pkg/db"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
	"github.com/timelessstrands/storefront-backend/pkg/metrics"
	"github.com/timelessstrands/storefront-backend/pkg/migrate"
	"github.com/timelessstrands/storefront-backend/pkg/redis"
	"github.com/timelessstrands/storefront-backend/pkg/storage/gcs"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore := cart.NewStore(redisClient, cfg.Cart.TTL, logg)
	cartService, err := cart.NewService(cartStore, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, customersService, catalogRepo, ordersRepo, settingsService, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(media.NewRepository(dbClient.DB()), catalogRepo, gcsClient, cfg.GCS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		AdminRepo:      auth.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(cfg, logg, routes.Deps{
		DB:      dbClient,
		Redis:   redisClient,
		GCS:     gcsClient,
		Session: sessionManager,
		Metrics: metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
	}, routes.Services{
		Auth:      authService,
		Catalog:   catalogService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Orders:    ordersService,
		Customers: customersService,
		Settings:  settingsService,
		Media:     mediaService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
