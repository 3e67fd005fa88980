package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharkleaf/backend/api/controllers"
	"github.com/sharkleaf/backend/api/middleware"
	"github.com/sharkleaf/backend/internal/auth"
	"github.com/sharkleaf/backend/internal/catalog"
	"github.com/sharkleaf/backend/internal/customers"
	"github.com/sharkleaf/backend/internal/loyalty"
	"github.com/sharkleaf/backend/internal/orders"
	"github.com/sharkleaf/backend/internal/scans"
	"github.com/sharkleaf/backend/internal/stock"
	"github.com/sharkleaf/backend/internal/trail"
	"github.com/sharkleaf/backend/pkg/auth/session"
	"github.com/sharkleaf/backend/pkg/config"
	"github.com/sharkleaf/backend/pkg/db"
	"github.com/sharkleaf/backend/pkg/enums"
	"github.com/sharkleaf/backend/pkg/logger"
)

// RedisSurface is the slice of the redis client the router hands to
// middleware and health checks.
type RedisSurface interface {
	Ping(context.Context) error
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Cfg      *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    RedisSurface
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	Auth      auth.Service
	Customers customers.Service
	Catalog   catalog.Service
	Stock     stock.Service
	Orders    orders.Service
	Loyalty   loyalty.Service
	Scans     scans.Service
	Trail     trail.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: tracking page, display board, gift validation.
		r.Get("/tracking/{ticket}", controllers.TrackingByTicket(deps.Orders, logg))
		r.Get("/monitor", controllers.Monitor(deps.Orders, logg))
		r.Get("/trail/{productName}", controllers.TrailLookup(deps.Trail, logg))
		r.Post("/gifts/validate", controllers.GiftValidate(deps.Loyalty, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, deps.Sessions)).
			Post("/scans", controllers.ScanCreate(deps.Scans, logg))

		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.Register(deps.Customers, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
				Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		})

		// Customer surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireCustomer(logg))
			r.Get("/me", controllers.Me(deps.Customers, logg))
			r.Post("/loyalty/redeem", controllers.LoyaltyRedeem(deps.Loyalty, logg))
			r.Post("/gifts/generate", controllers.GiftGenerate(deps.Loyalty, logg))
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.OrderCreate(deps.Orders, logg))
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
				r.Patch("/{orderId}", controllers.OrderTransition(deps.Orders, logg))
			})

			r.Route("/stock", func(r chi.Router) {
				r.Post("/", controllers.StockAdjust(deps.Stock, logg))
				r.Get("/", controllers.StockList(deps.Stock, logg))
				r.Get("/movements", controllers.StockMovements(deps.Stock, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(deps.Catalog, logg))
				r.Get("/", controllers.ProductList(deps.Catalog, logg))
				r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
				r.Put("/{productId}", controllers.ProductUpdate(deps.Catalog, logg))
				r.Delete("/{productId}", controllers.ProductDelete(deps.Catalog, logg))
			})

			r.Route("/plots", func(r chi.Router) {
				r.Post("/", controllers.PlotCreate(deps.Catalog, logg))
				r.Get("/", controllers.PlotList(deps.Catalog, logg))
				r.Get("/{plotId}", controllers.PlotDetail(deps.Catalog, logg))
				r.Put("/{plotId}", controllers.PlotUpdate(deps.Catalog, logg))
				r.Delete("/{plotId}", controllers.PlotDelete(deps.Catalog, logg))
			})

			r.Get("/customers", controllers.CustomerList(deps.Customers, logg))
		})
	})

	return r
}
