package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/tradeerp/backend/internal/application/catalog"
	"github.com/tradeerp/backend/internal/application/comparison"
	"github.com/tradeerp/backend/internal/infrastructure/cache"
	"github.com/tradeerp/backend/internal/infrastructure/config"
	"github.com/tradeerp/backend/internal/infrastructure/logger"
	"github.com/tradeerp/backend/internal/infrastructure/persistence"
	"github.com/tradeerp/backend/internal/infrastructure/telemetry"
	"github.com/tradeerp/backend/internal/interfaces/http/handler"
	"github.com/tradeerp/backend/internal/interfaces/http/middleware"
	"github.com/tradeerp/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting trade pricing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	pricingMetrics, err := telemetry.NewPricingMetrics(mp.Meter("trade-backend/pricing"))
	if err != nil {
		log.Fatal("Failed to create pricing metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	merchandiseRepo := persistence.NewGormMerchandiseRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	// Application services
	merchandiseService := catalogapp.NewMerchandiseService(merchandiseRepo, log)
	if cfg.Pricing.CacheEnabled {
		store, err := cache.NewTaxInfoCacheFactory(cfg.Redis, cfg.Pricing.CacheTTL, cache.WithLogger(log)).Create()
		if err != nil {
			log.Fatal("Failed to create tax info cache", zap.Error(err))
		}
		defer func() {
			_ = store.Close()
		}()
		merchandiseService.SetCache(store)
	}

	rates := comparison.RateDefaults{
		SearchExchangeRate: cfg.Pricing.SearchExchangeRate,
		FullExchangeRate:   cfg.Pricing.FullExchangeRate,
		ConversionRate:     cfg.Pricing.ConversionRate,
		SheetExchangeRate:  cfg.Pricing.SheetExchangeRate,
	}

	resolver := comparison.NewPurchasePriceResolver(merchandiseService, clientRepo, invoiceRepo, purchaseOrderRepo, log)
	resolver.SetMetrics(pricingMetrics)

	priceSearch := comparison.NewPriceSearchService(merchandiseService, invoiceRepo, log)
	priceSearch.SetRateDefaults(rates)
	priceSearch.SetMetrics(pricingMetrics)

	fullComparison := comparison.NewFullComparisonService(merchandiseService, invoiceRepo, purchaseOrderRepo, log)
	fullComparison.SetRateDefaults(rates)
	fullComparison.SetMetrics(pricingMetrics)

	sheets := comparison.NewSheetService(log)
	sheets.SetRateDefaults(rates)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.RegisterAPI(engine, router.Handlers{
		Comparison:  handler.NewComparisonHandler(resolver, fullComparison, sheets),
		PriceSearch: handler.NewPriceSearchHandler(priceSearch),
		Merchandise: handler.NewMerchandiseHandler(merchandiseService),
		Health:      handler.NewHealthHandler(db, version),
	}, router.WithAPIVersion("v1"))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush metrics", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
