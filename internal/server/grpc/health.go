package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name clients may ask about. The empty
// name refers to the server as a whole and is answered the same way.
const ServiceName = "gophaccounts"

// Pinger is satisfied by services.StatusService.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer answers grpc.health.v1.Health/Check by pinging the database.
// Watch and List are left unimplemented.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	pinger Pinger
	logger logging.Logger
}

func NewHealthServer(p Pinger, l logging.Logger) *HealthServer {
	return &HealthServer{pinger: p, logger: l}
}

func (h *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn(ctx, "database ping failed", "error", err)
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}
