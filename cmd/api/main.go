package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sharkleaf/backend/api/routes"
	"github.com/sharkleaf/backend/internal/auth"
	"github.com/sharkleaf/backend/internal/catalog"
	"github.com/sharkleaf/backend/internal/customers"
	"github.com/sharkleaf/backend/internal/loyalty"
	"github.com/sharkleaf/backend/internal/orders"
	"github.com/sharkleaf/backend/internal/scans"
	"github.com/sharkleaf/backend/internal/stock"
	"github.com/sharkleaf/backend/internal/trail"
	"github.com/sharkleaf/backend/internal/users"
	"github.com/sharkleaf/backend/pkg/auth/session"
	"github.com/sharkleaf/backend/pkg/config"
	"github.com/sharkleaf/backend/pkg/db"
	"github.com/sharkleaf/backend/pkg/logger"
	"github.com/sharkleaf/backend/pkg/metrics"
	"github.com/sharkleaf/backend/pkg/migrate"
	"github.com/sharkleaf/backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	meter := metrics.NewWorkflowMetrics(registry)

	conn := dbClient.DB()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	stockRepo := stock.NewRepository(conn)
	ledger := stock.NewLedger(stockRepo)
	stockSvc, err := stock.NewService(stockRepo, ledger, dbClient, catalogSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(orders.NewRepository(conn), dbClient, catalogSvc, ledger, meter)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	loyaltySvc, err := loyalty.NewService(loyalty.NewRepository(conn), dbClient, meter)
	if err != nil {
		logg.Error(context.Background(), "failed to create loyalty service", err)
		os.Exit(1)
	}

	customersSvc, err := customers.NewService(conn, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(users.NewRepository(conn), sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	scansSvc, err := scans.NewService(conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create scans service", err)
		os.Exit(1)
	}

	trailSvc, err := trail.NewService(cfg.OpenAI, cfg.Trail, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create trail service", err)
		os.Exit(1)
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
			Cfg:       cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			Registry:  registry,
			Auth:      authService,
			Customers: customersSvc,
			Catalog:   catalogSvc,
			Stock:     stockSvc,
			Orders:    ordersSvc,
			Loyalty:   loyaltySvc,
			Scans:     scansSvc,
			Trail:     trailSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
