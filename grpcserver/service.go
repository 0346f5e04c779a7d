package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

var movieServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MovieServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: searchHandler},
		{MethodName: "Popular", Handler: listHandler("Popular", MovieServer.Popular)},
		{MethodName: "Trending", Handler: listHandler("Trending", MovieServer.Trending)},
		{MethodName: "Upcoming", Handler: listHandler("Upcoming", MovieServer.Upcoming)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cinesearch/movie",
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func searchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MovieServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("Search")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MovieServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type (
	listMethod    func(MovieServer, context.Context, *ListRequest) (*MoviesResponse, error)
	methodHandler = func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error)
)

func listHandler(name string, call listMethod) methodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(ListRequest)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MovieServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(MovieServer), ctx, req.(*ListRequest))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls cinesearch.MovieService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Search(ctx context.Context, query string, opts ...grpc.CallOption) (*MoviesResponse, error) {
	return c.invoke(ctx, "Search", &SearchRequest{Query: query}, opts...)
}

func (c *Client) Popular(ctx context.Context, opts ...grpc.CallOption) (*MoviesResponse, error) {
	return c.invoke(ctx, "Popular", &ListRequest{}, opts...)
}

func (c *Client) Trending(ctx context.Context, opts ...grpc.CallOption) (*MoviesResponse, error) {
	return c.invoke(ctx, "Trending", &ListRequest{}, opts...)
}

func (c *Client) Upcoming(ctx context.Context, opts ...grpc.CallOption) (*MoviesResponse, error) {
	return c.invoke(ctx, "Upcoming", &ListRequest{}, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, in interface{}, opts ...grpc.CallOption) (*MoviesResponse, error) {
	out := new(MoviesResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
