package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timelessstrands/storefront-backend/api/controllers"
	"github.com/timelessstrands/storefront-backend/api/middleware"
	"github.com/timelessstrands/storefront-backend/internal/auth"
	"github.com/timelessstrands/storefront-backend/internal/cart"
	"github.com/timelessstrands/storefront-backend/internal/catalog"
	checkoutsvc "github.com/timelessstrands/storefront-backend/internal/checkout"
	"github.com/timelessstrands/storefront-backend/internal/customers"
	"github.com/timelessstrands/storefront-backend/internal/media"
	"github.com/timelessstrands/storefront-backend/internal/orders"
	"github.com/timelessstrands/storefront-backend/internal/settings"
	"github.com/timelessstrands/storefront-backend/pkg/auth/session"
	"github.com/timelessstrands/storefront-backend/pkg/config"
	"github.com/timelessstrands/storefront-backend/pkg/enums"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
	"github.com/timelessstrands/storefront-backend/pkg/metrics"
	"github.com/timelessstrands/storefront-backend/pkg/redis"
)

// Pinger is the health-check surface shared by the hard dependencies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      auth.Service
	Catalog   catalog.Service
	Cart      cart.Service
	Checkout  checkoutsvc.Service
	Orders    orders.Service
	Customers customers.Service
	Settings  settings.Service
	Media     media.Service
}

// Deps carries the infrastructure handles the router needs directly.
type Deps struct {
	DB      Pinger
	Redis   *redis.Client
	GCS     Pinger
	Session *session.Manager
	Metrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.GCS))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog, logg))
			r.Get("/featured", controllers.ProductFeatured(svcs.Catalog, logg))
			r.Get("/categories", controllers.ProductCategories(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartToken(logg))
			r.Post("/", controllers.CartCreate(svcs.Cart, logg))
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Put("/items", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{productId}/{variantId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})

		r.With(middleware.CartToken(logg)).Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Get("/orders/track/{orderNumber}", controllers.OrderTrack(svcs.Orders, logg))
		r.Get("/settings", controllers.PublicSettings(svcs.Settings, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Session, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Session, logg))
			r.Use(middleware.RequireRole(logg, enums.AdminRoleOwner.String(), enums.AdminRoleStaff.String()))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(svcs.Catalog, logg))
				r.Post("/", controllers.AdminProductCreate(svcs.Catalog, logg))
				r.Get("/{productId}", controllers.AdminProductDetail(svcs.Catalog, logg))
				r.Patch("/{productId}", controllers.AdminProductUpdate(svcs.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Catalog, logg))

				r.Route("/{productId}/media", func(r chi.Router) {
					r.Get("/", controllers.AdminMediaList(svcs.Media, logg))
					r.Post("/", controllers.AdminMediaAttach(svcs.Media, logg))
					r.Put("/order", controllers.AdminMediaReorder(svcs.Media, logg))
				})
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/presign", controllers.AdminMediaPresign(svcs.Media, logg))
				r.Delete("/{mediaId}", controllers.AdminMediaDetach(svcs.Media, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
				r.Get("/status-counts", controllers.AdminOrderStatusCounts(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
				r.Post("/{orderId}/confirm-payment", controllers.AdminOrderConfirmPayment(svcs.Orders, logg))
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.AdminCustomerList(svcs.Customers, logg))
				r.Get("/{customerId}", controllers.AdminCustomerDetail(svcs.Customers, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminSettingList(svcs.Settings, logg))
				r.Put("/", controllers.AdminSettingUpsert(svcs.Settings, logg))
				r.Delete("/{key}", controllers.AdminSettingDelete(svcs.Settings, logg))
			})
		})
	})

	return r
}
