package grpc

import (
	"errors"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps error kinds to gRPC codes. Storage faults hide their cause
// from the caller.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorMissingField):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorCommunication):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorStorage):
		return status.Error(codes.Internal, "storage error")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
