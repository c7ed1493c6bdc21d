package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/core/logging"
)

var interceptorLogger = logging.New("grpc")

// SetLogger replaces the logger used by all interceptors
func SetLogger(logger *logging.Logger) {
	if logger != nil {
		interceptorLogger = logger
	}
}

// Context keys for request metadata
type contextKey string

const (
	RequestIDKey           contextKey = "request_id"
	DefaultRequestIDHeader string     = "x-request-id"
)

// ServerOptions chains the interceptors in their intended order:
// recovery outermost, then request id, logging and error mapping
func ServerOptions(requestIDHeader string) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(),
			RequestIDInterceptor(requestIDHeader),
			LoggingInterceptor(),
			ErrorInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(),
			StreamErrorInterceptor(),
		),
	}
}

// ErrorInterceptor converts handler errors into gRPC status errors, so an
// unknown exception type reaches the client as InvalidArgument
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logHandlerError(ctx, info.FullMethod, err)
			return resp, mdwerrors.ToStatus(err)
		}
		return resp, nil
	}
}

// StreamErrorInterceptor is ErrorInterceptor for streaming handlers
func StreamErrorInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			logHandlerError(ss.Context(), info.FullMethod, err)
			return mdwerrors.ToStatus(err)
		}
		return nil
	}
}

func logHandlerError(ctx context.Context, method string, err error) {
	severity := mdwerrors.GetSeverity(err)
	kv := []interface{}{
		"request_id", GetRequestID(ctx),
		"method", method,
		"code", mdwerrors.GetCode(err).String(),
		"severity", severity.String(),
		"error", err.Error(),
	}
	if severity.ShouldAlert() {
		interceptorLogger.Error("gRPC handler failed", kv...)
		return
	}
	interceptorLogger.Warn("gRPC handler failed", kv...)
}

// RecoveryInterceptor recovers from panics in gRPC handlers
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				interceptorLogger.Error("gRPC panic recovered", "method", info.FullMethod, "panic", r, "stack", string(stack))
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor recovers from panics in streaming gRPC handlers
func StreamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				interceptorLogger.Error("gRPC stream panic recovered", "method", info.FullMethod, "panic", r, "stack", string(stack))
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(srv, ss)
	}
}

// LoggingInterceptor logs gRPC requests
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		statusCode := codes.OK
		if err != nil {
			statusCode = mdwerrors.GetCode(err).GRPCCode()
			if s, ok := status.FromError(err); ok {
				statusCode = s.Code()
			}
		}

		interceptorLogger.Debug("gRPC request",
			"request_id", GetRequestID(ctx),
			"method", info.FullMethod,
			"status", statusCode.String(),
			"duration", time.Since(start),
		)

		return resp, err
	}
}

// RequestIDInterceptor puts the incoming request id, or a new one, into
// the context. An empty header means DefaultRequestIDHeader.
func RequestIDInterceptor(header string) grpc.UnaryServerInterceptor {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := extractRequestID(ctx, header)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		ctx = metadata.AppendToOutgoingContext(ctx, header, requestID)

		return handler(ctx, req)
	}
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return extractRequestID(ctx, DefaultRequestIDHeader)
}

// extractRequestID extracts request ID from incoming metadata
func extractRequestID(ctx context.Context, header string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(header)
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
