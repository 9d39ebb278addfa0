package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the hook service.
const ServiceName = "authhooks.v1.HookService"

// Full method names.
const (
	MethodUserCreated          = "/" + ServiceName + "/UserCreated"
	MethodSendMagicLink        = "/" + ServiceName + "/SendMagicLink"
	MethodSendVerificationLink = "/" + ServiceName + "/SendVerificationLink"
	MethodGetProfile           = "/" + ServiceName + "/GetProfile"
	MethodDeleteProfile        = "/" + ServiceName + "/DeleteProfile"
	MethodRestoreProfile       = "/" + ServiceName + "/RestoreProfile"
	MethodPing                 = "/" + ServiceName + "/Ping"
)

// HookServiceServer is the server API of the hook service. Payloads are
// google.protobuf.Struct so the engine can pass its context bags as-is.
type HookServiceServer interface {
	UserCreated(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	SendMagicLink(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	SendVerificationLink(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RestoreProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// HookServiceDesc describes the hook service for grpc.Server.RegisterService.
var HookServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HookServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "UserCreated", Handler: unary(MethodUserCreated, newStruct, HookServiceServer.UserCreated)},
		{MethodName: "SendMagicLink", Handler: unary(MethodSendMagicLink, newStruct, HookServiceServer.SendMagicLink)},
		{MethodName: "SendVerificationLink", Handler: unary(MethodSendVerificationLink, newStruct, HookServiceServer.SendVerificationLink)},
		{MethodName: "GetProfile", Handler: unary(MethodGetProfile, newStruct, HookServiceServer.GetProfile)},
		{MethodName: "DeleteProfile", Handler: unary(MethodDeleteProfile, newStruct, HookServiceServer.DeleteProfile)},
		{MethodName: "RestoreProfile", Handler: unary(MethodRestoreProfile, newStruct, HookServiceServer.RestoreProfile)},
		{MethodName: "Ping", Handler: unary(MethodPing, newEmpty, HookServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authhooks/v1/hooks.proto",
}

func newStruct() *structpb.Struct { return &structpb.Struct{} }
func newEmpty() *emptypb.Empty    { return &emptypb.Empty{} }

// unary builds the grpc.MethodHandler that generated code would contain.
func unary[Req proto.Message, Resp proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(HookServiceServer, context.Context, Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HookServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HookServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// HookServiceClient calls the hook service; the engine side and tests use it.
type HookServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHookServiceClient(cc grpc.ClientConnInterface) *HookServiceClient {
	return &HookServiceClient{cc: cc}
}

func (c *HookServiceClient) UserCreated(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	return out, c.cc.Invoke(ctx, MethodUserCreated, in, out, opts...)
}

func (c *HookServiceClient) SendMagicLink(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	return out, c.cc.Invoke(ctx, MethodSendMagicLink, in, out, opts...)
}

func (c *HookServiceClient) SendVerificationLink(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	return out, c.cc.Invoke(ctx, MethodSendVerificationLink, in, out, opts...)
}

func (c *HookServiceClient) GetProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, MethodGetProfile, in, out, opts...)
}

func (c *HookServiceClient) DeleteProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, MethodDeleteProfile, in, out, opts...)
}

func (c *HookServiceClient) RestoreProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, MethodRestoreProfile, in, out, opts...)
}

func (c *HookServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, MethodPing, in, out, opts...)
}
