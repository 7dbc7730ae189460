package grpcserver

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the health service for the whole storefront.
const ServiceName = "sickfits"

// probes call Check without credentials
var publicMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
}

type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
}

func NewServer(authenticator SessionAuthenticator, logger zerolog.Logger) *Server {
	authorizer := NewAuthorizor(authenticator)
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			UnaryLoggerInterceptor(logger),
			UnaryAuthInterceptor(authorizer, publicMethods),
		),
		grpc.ChainStreamInterceptor(
			StreamAuthInterceptor(authorizer, publicMethods),
		),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
	}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// GracefulStop marks every service NOT_SERVING, then stops.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
