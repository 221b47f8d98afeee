package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shard-legends/loadout-service/internal/adapters"
	"github.com/shard-legends/loadout-service/internal/catalog"
	"github.com/shard-legends/loadout-service/internal/config"
	"github.com/shard-legends/loadout-service/internal/database"
	"github.com/shard-legends/loadout-service/internal/handlers"
	"github.com/shard-legends/loadout-service/internal/service"
	"github.com/shard-legends/loadout-service/internal/storage"
	"github.com/shard-legends/loadout-service/pkg/logger"
	"github.com/shard-legends/loadout-service/pkg/metrics"
	"go.uber.org/zap"
)

const catalogLoadTimeout = 30 * time.Second

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set service start time for metrics
	startTime := time.Now()
	go func() {
		for {
			metrics.ServiceUptime.Set(time.Since(startTime).Seconds())
			time.Sleep(cfg.Metrics.UpdateInterval)
		}
	}()

	// Set service info
	metrics.ServiceInfo.WithLabelValues("1.0.0", time.Now().Format(time.RFC3339)).Set(1)

	checkers := make(map[string]handlers.HealthChecker)
	repositoryDeps := &storage.RepositoryDependencies{
		MetricsCollector: adapters.NewMetricsAdapter(),
		TotalsTTL:        cfg.Cache.TotalsTTL,
	}

	// Initialize database (only the postgres catalog source needs it)
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		db, err := database.NewDB(&cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		dbAdapter := adapters.NewDatabaseAdapter(db)
		repositoryDeps.DB = dbAdapter
		checkers["database"] = dbAdapter
	}

	// Initialize Redis (optional totals cache)
	if cfg.Redis.Enabled() {
		redis, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()

		cacheAdapter := adapters.NewCacheAdapter(redis, cfg.Redis.KeyPrefix)
		repositoryDeps.Cache = cacheAdapter
		checkers["redis"] = cacheAdapter
	} else {
		logger.Info("Redis URL not set, totals cache disabled")
	}

	// Initialize repository
	repository := storage.NewRepository(repositoryDeps)

	// Load catalog
	source, err := catalogSource(cfg, repository)
	if err != nil {
		logger.Fatal("Failed to select catalog source", zap.Error(err))
	}
	loadCtx, loadCancel := context.WithTimeout(context.Background(), catalogLoadTimeout)
	cat, err := catalog.Load(loadCtx, source, logger.Named("catalog"))
	loadCancel()
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.String("source", cfg.Catalog.Source), zap.Error(err))
	}
	metrics.RecordCatalog(cat.ItemCount(), cat.ResourceCount())

	// Initialize service layer
	serviceDeps := &service.ServiceDependencies{
		Catalog:     cat,
		Metrics:     adapters.NewMetricsAdapter(),
		Logger:      logger.Named("service"),
		MaxSessions: cfg.Sessions.MaxSessions,
	}
	if repository.Totals != nil {
		serviceDeps.TotalsCache = repository.Totals
	}
	serviceLayer := service.NewService(serviceDeps)

	// Initialize cleanup service for idle sessions
	cleanupService := service.NewSessionCleanupService(
		serviceLayer.Sessions,
		logger.Named("session_cleanup"),
		service.CleanupConfig{
			IdleTimeout:     cfg.Sessions.IdleTimeout,
			CleanupInterval: cfg.Sessions.CleanupInterval,
		},
	)

	// Start cleanup service in background
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go func() {
		cleanupService.Start(cleanupCtx)
	}()

	// Initialize handlers
	allHandlers := handlers.NewHandlers(&handlers.HandlerDependencies{
		Service:       serviceLayer,
		Checkers:      checkers,
		HealthTimeout: cfg.Timeouts.DatabaseHealth,
		Logger:        logger.Named("http"),
	})

	routerConfig := handlers.RouterConfig{
		RequestTimeout: cfg.Timeouts.HTTPMiddleware,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	// Create public HTTP server
	publicServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handlers.NewPublicRouter(allHandlers, routerConfig),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Create internal HTTP server
	internalServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.InternalPort),
		Handler:      handlers.NewInternalRouter(allHandlers, routerConfig),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start public server in a goroutine
	go func() {
		logger.Info("Starting Loadout Service public server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.Port),
			zap.String("catalog_source", cfg.Catalog.Source),
		)

		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start public server", zap.Error(err))
		}
	}()

	// Start internal server in a goroutine
	go func() {
		logger.Info("Starting Loadout Service internal server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.InternalPort),
		)

		if err := internalServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start internal server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cleanupCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.GracefulShutdown)
	defer cancel()

	// Shutdown both servers
	shutdownErr := make(chan error, 2)

	go func() {
		if err := publicServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("public server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	go func() {
		if err := internalServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("internal server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	// Wait for both servers to shut down
	for i := 0; i < 2; i++ {
		if err := <-shutdownErr; err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
		}
	}

	logger.Info("Servers exited")
}

// catalogSource picks the catalog source named by the configuration.
func catalogSource(cfg *config.Config, repository *storage.Repository) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceEmbedded:
		return catalog.NewYAMLSource(""), nil
	case config.CatalogSourceFile:
		return catalog.NewYAMLSource(cfg.Catalog.Path), nil
	case config.CatalogSourcePostgres:
		if repository.Catalog == nil {
			return nil, fmt.Errorf("postgres catalog source requires a database connection")
		}
		return repository.Catalog, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
