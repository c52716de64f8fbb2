// Package rpc exposes card building over gRPC. Payloads are
// google.protobuf.Struct documents shaped like the card JSON, so the
// service needs no generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "showdown.v1.ChartService"

	buildCardMethod = "/" + ServiceName + "/BuildCard"
	listSetsMethod  = "/" + ServiceName + "/ListSets"
)

// ChartServiceServer is the server API.
type ChartServiceServer interface {
	BuildCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSets(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc is the grpc.ServiceDesc for ChartService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BuildCard", Handler: buildCardHandler},
		{MethodName: "ListSets", Handler: listSetsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "showdown/v1/chart.proto",
}

func RegisterChartServiceServer(s grpc.ServiceRegistrar, srv ChartServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func buildCardHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServiceServer).BuildCard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: buildCardMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChartServiceServer).BuildCard(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listSetsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChartServiceServer).ListSets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listSetsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChartServiceServer).ListSets(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls ChartService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) BuildCard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, buildCardMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSets(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listSetsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
