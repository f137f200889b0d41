package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.WithFields(ctx, "method", info.FullMethod)
	resp, err := handler(ctx, req)

	args := []any{"code", status.Code(err).String(), "duration", time.Since(start).String()}
	if err != nil {
		s.logger.Warn(ctx, "gRPC call failed", append(args, "error", err)...)
	} else {
		s.logger.Info(ctx, "gRPC call", args...)
	}
	return resp, err
}
