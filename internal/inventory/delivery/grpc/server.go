package grpc

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/inventory-ledger/pkg/logger"
)

// ServiceName is the name reported through the gRPC health service.
const ServiceName = "inventory.v1.InventoryLedger"

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes gRPC health and reflection for the inventory service. Health
// follows the database: NOT_SERVING while pings fail.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	db     Pinger
}

// NewServer creates the gRPC server with tracing and logging interceptors.
func NewServer(db Pinger) *Server {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(grpcServer)

	return &Server{grpc: grpcServer, health: healthServer, db: db}
}

// Serve blocks serving on lis.
func (s *Server) Serve(lis net.Listener) error {
	logger.Logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server started")
	return s.grpc.Serve(lis)
}

// CheckDatabase pings the database once and updates the serving status.
func (s *Server) CheckDatabase(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Database ping failed, reporting NOT_SERVING")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// WatchDatabase checks the database every interval until ctx is done.
func (s *Server) WatchDatabase(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval/2)
			s.CheckDatabase(pingCtx)
			cancel()
		}
	}
}

// GracefulStop marks the service NOT_SERVING and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// LoggingInterceptor logs gRPC requests
func LoggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("method", info.FullMethod).Dur("duration", duration).Msg("gRPC request failed")
	} else {
		logger.Debug(ctx).Str("method", info.FullMethod).Dur("duration", duration).Msg("gRPC request completed")
	}

	return resp, err
}
