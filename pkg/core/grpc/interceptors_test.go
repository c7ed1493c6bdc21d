package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/msto63/throwables/pkg/core/logging"
	"github.com/msto63/throwables/pkg/taxonomy"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/throwables.Taxonomy/Check"}

func init() {
	SetLogger(logging.NewNop())
}

func TestErrorInterceptor(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	tests := []struct {
		name    string
		handler grpc.UnaryHandler
		want    codes.Code
	}{
		{
			name: "unknown filter",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return reg.IsRelevantFor(taxonomy.UnknownBlock, "no_such_filter")
			},
			want: codes.InvalidArgument,
		},
		{
			name: "duplicate declaration",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return reg.Register(taxonomy.UserException, taxonomy.Exception)
			},
			want: codes.InvalidArgument,
		},
		{
			name: "plain error",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return nil, errors.New("boom")
			},
			want: codes.Unknown,
		},
		{
			name: "status passes through",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return nil, status.Error(codes.NotFound, "gone")
			},
			want: codes.NotFound,
		},
		{
			name: "success",
			handler: func(ctx context.Context, req interface{}) (interface{}, error) {
				return reg.IsRelevantFor(taxonomy.UnknownBlock, taxonomy.Exception)
			},
			want: codes.OK,
		},
	}

	interceptor := ErrorInterceptor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interceptor(context.Background(), nil, testInfo, tt.handler)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestErrorInterceptor_KeepsMessage(t *testing.T) {
	reg, err := taxonomy.New()
	require.NoError(t, err)

	_, err = ErrorInterceptor()(context.Background(), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return reg.Lookup("nope")
		})

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Contains(t, s.Message(), "unknown exception type: nope")
}

func TestRecoveryInterceptor(t *testing.T) {
	resp, err := RecoveryInterceptor()(context.Background(), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("handler exploded")
		})

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRequestIDInterceptor(t *testing.T) {
	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	}

	t.Run("generated", func(t *testing.T) {
		_, err := RequestIDInterceptor("")(context.Background(), nil, testInfo, handler)
		require.NoError(t, err)
		_, err = uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("from default header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs(DefaultRequestIDHeader, "req-42"))
		_, err := RequestIDInterceptor("")(ctx, nil, testInfo, handler)
		require.NoError(t, err)
		assert.Equal(t, "req-42", seen)
	})

	t.Run("from custom header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("x-trace", "trace-7"))
		_, err := RequestIDInterceptor("x-trace")(ctx, nil, testInfo, handler)
		require.NoError(t, err)
		assert.Equal(t, "trace-7", seen)
	})
}

func TestGetRequestID(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
}

func TestServerOptions(t *testing.T) {
	opts := ServerOptions("")
	assert.Len(t, opts, 2)

	// options must be accepted by a real server
	srv := grpc.NewServer(opts...)
	srv.Stop()
}
