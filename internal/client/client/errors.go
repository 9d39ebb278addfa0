package client

import (
	"fmt"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError turns a gRPC status into an error matching the shared sentinels
// while keeping the server's message.
func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var kind error
	switch st.Code() {
	case codes.NotFound:
		kind = common.ErrorNotFound
	case codes.InvalidArgument:
		kind = common.ErrorMissingField
	case codes.Unauthenticated:
		kind = common.ErrorUnauthorized
	case codes.Unavailable:
		kind = common.ErrorCommunication
	default:
		return err
	}
	return fmt.Errorf("%w: %s", kind, st.Message())
}
