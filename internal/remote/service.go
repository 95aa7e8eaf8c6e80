// Package remote exposes the simulated pad over gRPC so scripts and other
// processes can press buttons and watch the joystick outputs.
//
// The service is described by hand with protobuf well-known types, so no
// generated code is needed:
//
//	service snes2db9.remote.v1.Pad {
//	  rpc SetButtons(google.protobuf.UInt32Value) returns (google.protobuf.Empty);
//	  rpc GetState(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
package remote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "snes2db9.remote.v1.Pad"

const (
	setButtonsMethod = "/" + ServiceName + "/SetButtons"
	getStateMethod   = "/" + ServiceName + "/GetState"
)

// PadServer is the server side of the Pad service.
type PadServer interface {
	SetButtons(ctx context.Context, in *wrapperspb.UInt32Value) (*emptypb.Empty, error)
	GetState(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterPadServer registers srv on s.
func RegisterPadServer(s grpc.ServiceRegistrar, srv PadServer) {
	s.RegisterService(&padServiceDesc, srv)
}

var padServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PadServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SetButtons", Handler: setButtonsHandler},
		{MethodName: "GetState", Handler: getStateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "snes2db9/remote/v1/pad.proto",
}

func setButtonsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PadServer).SetButtons(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: setButtonsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PadServer).SetButtons(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PadServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getStateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PadServer).GetState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
