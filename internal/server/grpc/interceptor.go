package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const callerKey ctxKey = "caller"

// CallerFromContext returns the authenticated caller name, if any.
func CallerFromContext(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(callerKey).(string)
	return c, ok
}

// requiresCaller reports whether method must carry a caller token. Ping and
// services other than the hook service (health) are open.
func requiresCaller(method string) bool {
	return strings.HasPrefix(method, "/"+ServiceName+"/") && method != MethodPing
}

func (s *GRPCServer) callerInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if len(s.jwtSecret) == 0 || !requiresCaller(info.FullMethod) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	caller, err := auth.CallerFromToken(accessToken, s.jwtSecret)
	if err != nil {
		s.logger.Warn(ctx, "hook call rejected", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	ctx = context.WithValue(ctx, callerKey, caller)
	s.logger.Debug(ctx, "hook call", "method", info.FullMethod, "caller", caller)

	return handler(ctx, req)
}
