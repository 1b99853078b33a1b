package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/tair/inventory-ledger/docs/inventory"
	"github.com/tair/inventory-ledger/internal/inventory"
	grpcDelivery "github.com/tair/inventory-ledger/internal/inventory/delivery/grpc"
	httpDelivery "github.com/tair/inventory-ledger/internal/inventory/delivery/http"
	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/kafka"
	"github.com/tair/inventory-ledger/pkg/config"
	"github.com/tair/inventory-ledger/pkg/database"
	"github.com/tair/inventory-ledger/pkg/logger"
	"github.com/tair/inventory-ledger/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet
		logger.Init("inventory-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting inventory service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer - continuing without tracing")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, sqlDB, err := database.NewGormConnection(database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer sqlDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher domain.EventPublisher
	var kafkaPublisher *kafka.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err = kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to create Kafka publisher - inventory events will not be published")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	}

	// Initialize service with Wire DI
	svc, err := inventory.InitializeService(db, redisClient, publisher, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory service")
	}

	// Run migrations
	if err := svc.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	if cfg.Kafka.Enabled {
		startConsumer(ctx, cfg.Kafka, svc)
	}

	grpcServer := grpcDelivery.NewServer(sqlDB)
	go grpcServer.WatchDatabase(ctx, 10*time.Second)
	go startGRPCServer(grpcServer, cfg.GRPCPort)

	httpServer := newHTTPServer(svc, sqlDB, cfg.HTTPPort)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
}

func connectRedis(ctx context.Context, cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		logger.Logger.Info().Msg("REDIS_ADDR is empty - status caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", cfg.Addr).
			Msg("Failed to connect to Redis - status caching will be disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("redis_addr", cfg.Addr).Msg("Connected to Redis for status caching")
	return client
}

func startConsumer(ctx context.Context, cfg config.Kafka, svc *inventory.Service) {
	consumer, err := kafka.NewConsumer(cfg.Brokers, cfg.GroupID, []string{
		kafka.TopicInventoryMovements,
		kafka.TopicCatalogEvents,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to create Kafka consumer - movement and catalog events will not be consumed")
		return
	}
	svc.Consumer.Register(consumer)
	svc.CatalogConsumer.Register(consumer)

	go func() {
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Error().Err(err).Msg("Kafka consumer stopped")
		}
	}()
}

func newHTTPServer(svc *inventory.Service, db httpDelivery.Pinger, port string) *http.Server {
	// Setup router
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	svc.HTTP.RegisterRoutes(router)
	svc.LocationHTTP.RegisterRoutes(router)

	// Health check endpoint
	svc.HTTP.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, nil)

	return &http.Server{
		Addr:              ":" + port,
		Handler:           httpDelivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func startGRPCServer(server *grpcDelivery.Server, port string) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen for gRPC")
	}
	if err := server.Serve(lis); err != nil {
		logger.Logger.Error().Err(err).Msg("gRPC server stopped")
	}
}
