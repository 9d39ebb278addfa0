package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) UserCreated(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	rc := registrationContext(req)
	id, err := userID(req.GetFields()[fieldUserID])
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.hooks.UserCreated.Execute(ctx, rc, id); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) SendMagicLink(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	token, err := magicLinkToken(req)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.hooks.SendMagicLink.Send(ctx, token); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) SendVerificationLink(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	token, err := magicLinkToken(req)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.hooks.SendVerification.Send(ctx, registrationContext(req), token); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.profileCall(ctx, req, s.profiles.Get)
}

func (s *GRPCServer) DeleteProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.profileCall(ctx, req, s.profiles.Delete)
}

func (s *GRPCServer) RestoreProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.profileCall(ctx, req, s.profiles.Restore)
}

func (s *GRPCServer) profileCall(ctx context.Context, req *structpb.Struct, op func(context.Context, string) (*models.Profile, error)) (*structpb.Struct, error) {
	id, err := profileID(req)
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := op(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := profileStruct(p)
	if err != nil {
		s.logger.Error(ctx, "profile encoding failed", "profile_id", id, "error", err)
		return nil, toStatus(err)
	}
	return out, nil
}

// Ping reports liveness with the server's unix time.
func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"status": "OK",
		"time":   float64(time.Now().Unix()),
	})
}
