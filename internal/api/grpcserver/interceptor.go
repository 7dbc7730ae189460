package grpcserver

import (
	"context"
	"time"

	"github.com/ccfreem/sickfits/internal/util"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// authorize returns ctx carrying the caller's session. Methods in public pass without one.
func authorize(ctx context.Context, authorizer IAuthorizer, public map[string]bool, method string) (context.Context, error) {
	session, err := authorizer.AuthorizUser(ctx)
	if err == nil {
		return util.WithSession(ctx, session), nil
	}
	if public[method] {
		return ctx, nil
	}
	zerolog.Ctx(ctx).Debug().Err(err).Str("method", method).Msg("grpc call rejected")
	return nil, status.Error(codes.Unauthenticated, "unauthenticated")
}

func UnaryAuthInterceptor(authorizer IAuthorizer, public map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := authorize(ctx, authorizer, public, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

type sessionStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *sessionStream) Context() context.Context {
	return s.ctx
}

func StreamAuthInterceptor(authorizer IAuthorizer, public map[string]bool) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := authorize(ss.Context(), authorizer, public, info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &sessionStream{ServerStream: ss, ctx: ctx})
	}
}

// UnaryLoggerInterceptor puts logger in the call context and logs every completed call.
func UnaryLoggerInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(logger.WithContext(ctx), req)
		logger.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("grpc call completed")
		return resp, err
	}
}
