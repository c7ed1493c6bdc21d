package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/msto63/throwables/pkg/core/health"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Addr              string
	RequestIDHeader   string
	HealthInterval    time.Duration
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:              "127.0.0.1:50551",
		RequestIDHeader:   DefaultRequestIDHeader,
		HealthInterval:    10 * time.Second,
		EnableReflection:  true,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server serves the standard grpc.health.v1 service with statuses taken
// from a health.Monitor: the overall report under the empty service name
// and every check under its own name. Degraded still counts as serving.
type Server struct {
	server  *grpc.Server
	health  *grpchealth.Server
	monitor *health.Monitor
	config  ServerConfig

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a server publishing monitor. Zero config fields take
// the DefaultServerConfig values.
func NewServer(monitor *health.Monitor, cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	def := DefaultServerConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = def.HealthInterval
	}
	if cfg.KeepaliveInterval <= 0 {
		cfg.KeepaliveInterval = def.KeepaliveInterval
	}
	if cfg.KeepaliveTimeout <= 0 {
		cfg.KeepaliveTimeout = def.KeepaliveTimeout
	}

	serverOpts := []grpc.ServerOption{
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	serverOpts = append(serverOpts, ServerOptions(cfg.RequestIDHeader)...)
	serverOpts = append(serverOpts, opts...)

	s := &Server{
		server:  grpc.NewServer(serverOpts...),
		health:  grpchealth.NewServer(),
		monitor: monitor,
		config:  cfg,
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	if cfg.EnableReflection {
		reflection.Register(s.server)
	}
	return s
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// Listen binds the configured address. Serve calls it when needed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener
	return nil
}

// Address returns the bound address, or the configured one before Listen
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Refresh runs the monitor once and publishes the result
func (s *Server) Refresh(ctx context.Context) *health.Report {
	report := s.monitor.Check(ctx)
	s.health.SetServingStatus("", servingStatus(report.Status))
	for _, c := range report.Checks {
		s.health.SetServingStatus(c.Name, servingStatus(c.Status))
	}
	return report
}

func servingStatus(status health.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch status {
	case health.StatusHealthy, health.StatusDegraded:
		return healthpb.HealthCheckResponse_SERVING
	default:
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
}

// Serve publishes health every HealthInterval and serves until ctx is
// done, then stops gracefully
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	report := s.Refresh(ctx)
	interceptorLogger.Info("gRPC server listening", "addr", listener.Addr().String(), "status", string(report.Status))

	served := make(chan struct{})
	defer close(served)
	go func() {
		ticker := time.NewTicker(s.config.HealthInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.server.GracefulStop()
				return
			case <-served:
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server on %s: %w", listener.Addr(), err)
	}
	interceptorLogger.Info("gRPC server stopped", "addr", listener.Addr().String())
	return nil
}
