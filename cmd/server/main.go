package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/example/laundryhub/api"
	"github.com/example/laundryhub/pkg/account"
	"github.com/example/laundryhub/pkg/business"
	"github.com/example/laundryhub/pkg/config"
	"github.com/example/laundryhub/pkg/discovery"
	"github.com/example/laundryhub/pkg/notify"
	"github.com/example/laundryhub/pkg/orders"
	"github.com/example/laundryhub/pkg/payment"
	"github.com/example/laundryhub/pkg/places"
	"github.com/example/laundryhub/pkg/quotes"
	"github.com/example/laundryhub/pkg/repository"
	"github.com/example/laundryhub/pkg/wizard"
)

// @title Laundry Order Service API
// @version 1.0
// @description Customer-facing API for booking laundry pickup and delivery.
// @BasePath /api/v1
func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := buildLogger(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting laundry order service",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// MySQL
	store, err := repository.NewStore(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	// Redis
	redisRepo := repository.NewRedisRepository(&cfg.Redis)
	defer redisRepo.Close()

	// MongoDB audit trail
	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoRepo.Close(context.Background())

	// Actor-based notifications
	notifier, err := notify.NewNotifier(logger)
	if err != nil {
		logger.Fatal("Failed to start notification actor", zap.Error(err))
	}
	defer notifier.Shutdown()

	// External clients
	gateway := payment.NewClient(&cfg.Payment)
	placesClient := places.NewClient(&cfg.Places)

	// Services
	drafts := wizard.NewStore(redisRepo, cfg.Draft.TTL)
	orderSvc := orders.NewService(store, gateway, redisRepo, mongoRepo, notifier, cfg.Payment.Currency, logger)
	accountSvc := account.NewService(store)
	quoteSvc := quotes.NewService(store, notifier)
	businessSvc := business.NewService(store)

	server := api.NewServer(cfg, logger, drafts, orderSvc, accountSvc, quoteSvc, businessSvc, placesClient)
	server.SetupRoutes()

	// Connect to etcd for service discovery
	registry, err := discovery.NewRegistry(&cfg.Etcd)
	if err != nil {
		logger.Fatal("Failed to connect to etcd", zap.Error(err))
	}
	defer registry.Close()

	// Register service
	ctx := context.Background()
	instance := &discovery.Instance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	if err := registry.Register(ctx, instance); err != nil {
		logger.Fatal("Failed to register service", zap.Error(err))
	}

	logger.Info("Service registered in etcd",
		zap.String("name", cfg.Server.Name),
		zap.String("address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)))

	// Ping dependencies
	if err := redisRepo.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}
	if err := mongoRepo.Ping(ctx); err != nil {
		logger.Warn("MongoDB connection failed", zap.Error(err))
	} else {
		logger.Info("MongoDB connected successfully")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	// Deregister service
	if err := registry.Deregister(ctx, instance); err != nil {
		logger.Error("Failed to deregister service", zap.Error(err))
	}

	logger.Info("Service stopped")
}

func buildLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = level
	}
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	return zapCfg.Build()
}
