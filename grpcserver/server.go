package grpcserver

import (
	"context"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"cinesearch/movie"
	"cinesearch/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const ServiceName = "cinesearch.MovieService"

type SearchRequest struct {
	Query string `json:"query"`
}

type ListRequest struct{}

type MoviesResponse struct {
	Results []movie.Summary `json:"results"`
}

// MovieServer is the handler contract of cinesearch.MovieService.
type MovieServer interface {
	Search(context.Context, *SearchRequest) (*MoviesResponse, error)
	Popular(context.Context, *ListRequest) (*MoviesResponse, error)
	Trending(context.Context, *ListRequest) (*MoviesResponse, error)
	Upcoming(context.Context, *ListRequest) (*MoviesResponse, error)
}

type Server struct {
	Addr string

	MovieService movie.Service
	Logger       *zap.SugaredLogger

	grpcServer *grpc.Server
	health     *health.Server
}

func New(addr string, svc movie.Service, l *zap.SugaredLogger) *Server {
	if l == nil {
		l = logger.NOOPLogger
	}
	s := &Server{
		Addr:         addr,
		MovieService: svc,
		Logger:       l,
		health:       health.NewServer(),
	}

	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))
	s.grpcServer.RegisterService(&movieServiceDesc, s)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

func (s *Server) Search(ctx context.Context, req *SearchRequest) (*MoviesResponse, error) {
	if s.MovieService == nil {
		return nil, status.Error(codes.Unimplemented, "movie service not configured")
	}
	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) > movie.MaxQueryLength {
		return nil, status.Error(codes.InvalidArgument, movie.ErrInvalidQuery.Message)
	}
	return &MoviesResponse{Results: s.MovieService.SearchByTitle(ctx, query)}, nil
}

func (s *Server) Popular(ctx context.Context, _ *ListRequest) (*MoviesResponse, error) {
	return s.list(ctx, movie.Service.ListPopular)
}

func (s *Server) Trending(ctx context.Context, _ *ListRequest) (*MoviesResponse, error) {
	return s.list(ctx, movie.Service.ListTrending)
}

func (s *Server) Upcoming(ctx context.Context, _ *ListRequest) (*MoviesResponse, error) {
	return s.list(ctx, movie.Service.ListUpcoming)
}

func (s *Server) list(ctx context.Context, fetch func(movie.Service, context.Context) []movie.Summary) (*MoviesResponse, error) {
	if s.MovieService == nil {
		return nil, status.Error(codes.Unimplemented, "movie service not configured")
	}
	return &MoviesResponse{Results: fetch(s.MovieService, ctx)}, nil
}

func (s *Server) logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.Logger.Infow("rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"latency", time.Since(start).String(),
	)
	return resp, err
}
