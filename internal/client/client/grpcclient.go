package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/server/auth"
	gs "github.com/dmitrijs2005/authbridge/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// TokenSource produces the caller token attached to each request.
type TokenSource func() (string, error)

// SignedTokens returns a TokenSource minting HS256 tokens for caller.
func SignedTokens(caller string, secretKey []byte, ttl time.Duration) TokenSource {
	return func() (string, error) {
		return auth.GenerateToken(caller, secretKey, ttl)
	}
}

type GRPCClient struct {
	conn    *grpc.ClientConn
	client  *gs.HookServiceClient
	tokens  TokenSource
	timeout time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.tokens != nil {
		token, err := s.tokens()
		if err != nil {
			return err
		}
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewHookClient dials endpointURL lazily; extra options are appended to the
// defaults, which tests use to plug in a bufconn dialer.
func NewHookClient(endpointURL string, tokens TokenSource, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{tokens: tokens, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = gs.NewHookServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Ping returns the server's status map.
func (s *GRPCClient) Ping(ctx context.Context) (map[string]any, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.AsMap(), nil
}

// GetProfile returns the dehydrated row of an active profile.
func (s *GRPCClient) GetProfile(ctx context.Context, id string) (map[string]any, error) {
	return s.profileCall(ctx, id, s.client.GetProfile)
}

// DeleteProfile soft deletes a profile and returns its final row.
func (s *GRPCClient) DeleteProfile(ctx context.Context, id string) (map[string]any, error) {
	return s.profileCall(ctx, id, s.client.DeleteProfile)
}

// RestoreProfile clears the deletion mark and returns the restored row.
func (s *GRPCClient) RestoreProfile(ctx context.Context, id string) (map[string]any, error) {
	return s.profileCall(ctx, id, s.client.RestoreProfile)
}

type profileRPC func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

func (s *GRPCClient) profileCall(ctx context.Context, id string, call profileRPC) (map[string]any, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	resp, err := call(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.AsMap(), nil
}
