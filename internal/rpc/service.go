// internal/rpc/service.go
// TransformService is the gRPC contract between publishers and the buffer
// daemon: Ingest (client-streaming) pushes batches of stamped transforms;
// Lookup (unary) resolves a chained, time-interpolated transform.
//
// This file is written by hand in the shape protoc-gen-go-grpc would produce
// (see internal/proto/agent_grpc.pb.go for the pattern it imitates), using
// wrapperspb.BytesValue/StringValue as the wire messages. See DESIGN.md for
// why: the corpus's actual protoc-gen-go message file (defining AgentEnvelope
// et al.) was not present to regenerate against, and hand-authoring a
// protoc-gen-go raw descriptor without running protoc is unreliable.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	TransformService_Ingest_FullMethodName = "/tf2.rpc.TransformService/Ingest"
	TransformService_Lookup_FullMethodName = "/tf2.rpc.TransformService/Lookup"
)

// TransformServiceClient is the client API for TransformService.
type TransformServiceClient interface {
	// Ingest opens a client-streaming call: the caller sends one
	// wrapperspb.BytesValue per batch (see EncodeBatch) and, on CloseAndRecv,
	// receives a wrapperspb.StringValue acknowledging the last batch id.
	Ingest(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[wrapperspb.BytesValue, wrapperspb.StringValue], error)

	// Lookup performs one unary LookupTransform (or, when the request
	// carries time-travel fields, LookupTransformWithTimeTravel) call.
	Lookup(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type transformServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTransformServiceClient wraps a ClientConn with the TransformService API.
func NewTransformServiceClient(cc grpc.ClientConnInterface) TransformServiceClient {
	return &transformServiceClient{cc}
}

func (c *transformServiceClient) Ingest(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[wrapperspb.BytesValue, wrapperspb.StringValue], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &TransformService_ServiceDesc.Streams[0], TransformService_Ingest_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[wrapperspb.BytesValue, wrapperspb.StringValue]{ClientStream: stream}, nil
}

func (c *transformServiceClient) Lookup(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, TransformService_Lookup_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TransformServiceServer is the server API for TransformService. All
// implementations must embed UnimplementedTransformServiceServer.
type TransformServiceServer interface {
	Ingest(grpc.ClientStreamingServer[wrapperspb.BytesValue, wrapperspb.StringValue]) error
	Lookup(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	mustEmbedUnimplementedTransformServiceServer()
}

// UnimplementedTransformServiceServer must be embedded (by value) to have
// forward-compatible implementations.
type UnimplementedTransformServiceServer struct{}

func (UnimplementedTransformServiceServer) Ingest(grpc.ClientStreamingServer[wrapperspb.BytesValue, wrapperspb.StringValue]) error {
	return status.Errorf(codes.Unimplemented, "method Ingest not implemented")
}

func (UnimplementedTransformServiceServer) Lookup(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Lookup not implemented")
}

func (UnimplementedTransformServiceServer) mustEmbedUnimplementedTransformServiceServer() {}

// RegisterTransformServiceServer registers srv with s.
func RegisterTransformServiceServer(s grpc.ServiceRegistrar, srv TransformServiceServer) {
	s.RegisterService(&TransformService_ServiceDesc, srv)
}

func _TransformService_Ingest_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(TransformServiceServer).Ingest(&grpc.GenericServerStream[wrapperspb.BytesValue, wrapperspb.StringValue]{ServerStream: stream})
}

func _TransformService_Lookup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TransformServiceServer).Lookup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TransformService_Lookup_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TransformServiceServer).Lookup(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// TransformService_ServiceDesc is the grpc.ServiceDesc for TransformService.
var TransformService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "tf2.rpc.TransformService",
	HandlerType: (*TransformServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Lookup",
			Handler:    _TransformService_Lookup_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Ingest",
			Handler:       _TransformService_Ingest_Handler,
			ClientStreams: true,
		},
	},
	Metadata: "tf2/rpc/transform.proto",
}
