package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type unaryCall func(BoardServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BoardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BoardServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes kessan.v1.Board for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateSession", BoardServer.CreateSession),
		unary("GetPayload", BoardServer.GetPayload),
		unary("Apply", BoardServer.Apply),
		unary("Start", BoardServer.Start),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kessan/v1/board.proto",
}

func Register(s grpc.ServiceRegistrar, srv BoardServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls kessan.v1.Board on a connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) invoke(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, in map[string]any) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateSession", in)
}

func (c *Client) GetPayload(ctx context.Context, session string) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetPayload", map[string]any{"session": session})
}

func (c *Client) Apply(ctx context.Context, in map[string]any) (*structpb.Struct, error) {
	return c.invoke(ctx, "Apply", in)
}

func (c *Client) Start(ctx context.Context, session string) (*structpb.Struct, error) {
	return c.invoke(ctx, "Start", map[string]any{"session": session})
}
