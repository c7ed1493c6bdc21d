package errors

import (
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts an error into a gRPC status error. Errors that already
// carry a gRPC status are returned unchanged; unstructured errors become
// codes.Unknown.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if stderrors.As(err, &e) {
		return status.Error(e.code.GRPCCode(), err.Error())
	}

	return status.Error(codes.Unknown, err.Error())
}
