// Package grpc exposes the hooks and operator profile methods over gRPC,
// together with the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type UserCreatedHook interface {
	Execute(ctx context.Context, rc authengine.RegistrationContext, userID any) error
}

type MagicLinkHook interface {
	Send(ctx context.Context, token authengine.MagicLinkToken) error
}

type VerificationLinkHook interface {
	Send(ctx context.Context, rc authengine.RegistrationContext, token authengine.MagicLinkToken) error
}

// ProfileOperator backs the operator methods.
type ProfileOperator interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Delete(ctx context.Context, id string) (*models.Profile, error)
	Restore(ctx context.Context, id string) (*models.Profile, error)
}

// Hooks groups the three engine-facing hooks.
type Hooks struct {
	UserCreated      UserCreatedHook
	SendMagicLink    MagicLinkHook
	SendVerification VerificationLinkHook
}

type GRPCServer struct {
	address   string
	hooks     Hooks
	profiles  ProfileOperator
	health    *grpchealth.Server
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, hooks Hooks, profiles ProfileOperator, health *grpchealth.Server, secretKey string) *GRPCServer {
	if health == nil {
		health = grpchealth.NewServer()
	}
	return &GRPCServer{
		address:   address,
		hooks:     hooks,
		profiles:  profiles,
		health:    health,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.callerInterceptor),
	)
	srv.RegisterService(&HookServiceDesc, s)
	healthpb.RegisterHealthServer(srv, s.health)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	if len(s.jwtSecret) == 0 {
		s.logger.Warn(ctx, "hook caller authentication disabled: no secret configured")
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
