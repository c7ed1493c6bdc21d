package grpc

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/msto63/throwables/pkg/core/health"
	"github.com/msto63/throwables/pkg/taxonomy"
)

// startServer serves monitor on a free local port and returns a health client
func startServer(t *testing.T, monitor *health.Monitor) (healthpb.HealthClient, context.CancelFunc, <-chan error) {
	t.Helper()

	srv := NewServer(monitor, ServerConfig{Addr: "127.0.0.1:0", HealthInterval: 20 * time.Millisecond})
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	conn, err := grpc.NewClient(srv.Address(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		cancel()
	})
	return healthpb.NewHealthClient(conn), cancel, errCh
}

func checkStatus(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, DefaultRequestIDHeader, "test-request")
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_PublishesMonitor(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	monitor := health.NewMonitor("throwables", "test")
	monitor.Register(health.FromError("taxonomy", health.StatusUnhealthy, func(ctx context.Context) error {
		return taxonomy.Verify(reg)
	}))
	monitor.Register(health.FromError("journal", health.StatusDegraded, func(ctx context.Context) error {
		return errors.New("journal locked")
	}))

	client, _, _ := startServer(t, monitor)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, "taxonomy"))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, "journal"))
}

func TestServer_RefreshesStatus(t *testing.T) {
	var failing atomic.Bool
	monitor := health.NewMonitor("throwables", "test")
	monitor.Register(health.FromError("taxonomy", health.StatusUnhealthy, func(ctx context.Context) error {
		if failing.Load() {
			return errors.New("closure mismatch")
		}
		return nil
	}))

	client, _, _ := startServer(t, monitor)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))

	failing.Store(true)
	require.Eventually(t, func() bool {
		return checkStatus(t, client, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client, "taxonomy"))
}

func TestServer_StopsOnContextCancel(t *testing.T) {
	client, cancel, errCh := startServer(t, health.NewMonitor("throwables", "test"))
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewServer_Defaults(t *testing.T) {
	srv := NewServer(health.NewMonitor("throwables", "test"), ServerConfig{})
	assert.Equal(t, DefaultServerConfig().Addr, srv.Address())
	assert.Equal(t, 10*time.Second, srv.config.HealthInterval)
	assert.NotNil(t, srv.GRPCServer())
}

func TestServer_ListenError(t *testing.T) {
	srv := NewServer(health.NewMonitor("throwables", "test"), ServerConfig{Addr: "256.0.0.1:bad"})
	assert.Error(t, srv.Serve(context.Background()))
}
