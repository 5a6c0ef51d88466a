package bootstrap

import (
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer returns a gRPC server exposing the standard health and
// reflection services. The health server starts NOT_SERVING.
func NewGRPCServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)
	reflection.Register(srv)
	return srv, healthSrv
}

// NewHealthGateway answers GET /healthz over HTTP by calling the gRPC
// health service: 200 while SERVING, 503 otherwise.
func NewHealthGateway(client healthpb.HealthClient) *runtime.ServeMux {
	return runtime.NewServeMux(runtime.WithHealthzEndpoint(client))
}
