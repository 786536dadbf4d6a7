package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/utils"
)

const authorizationMetadataKey = "authorization"

// healthMethodPrefix matches every method of grpc.health.v1.Health.
var healthMethodPrefix = "/" + healthpb.Health_ServiceDesc.ServiceName + "/"

func isPublicMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, healthMethodPrefix)
}

func (h *Handler) unaryAuthInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if isPublicMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	ctx, err := h.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}

	return handler(ctx, req)
}

func (h *Handler) streamAuthInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if isPublicMethod(info.FullMethod) {
		return handler(srv, ss)
	}

	ctx, err := h.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}

	return handler(srv, &authenticatedStream{ServerStream: ss, ctx: ctx})
}

// authenticate verifies the bearer token from the "authorization" metadata
// and returns a context carrying the claims.
func (h *Handler) authenticate(ctx context.Context, method string) (context.Context, error) {
	log := h.logger.With().Str("method", method).Logger()

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationMetadataKey); len(values) > 0 {
			header = values[0]
		}
	}
	if header == "" {
		log.Info().Msg("missing token")
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		log.Info().Msg("malformed authorization metadata")
		return nil, status.Error(codes.Unauthenticated, "invalid authorization metadata")
	}

	claims, err := h.services.TokenService.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			log.Info().Msg("token expired")
			return nil, status.Error(codes.Unauthenticated, "token is expired")
		}
		log.Warn().Msg("token is invalid")
		return nil, status.Error(codes.Unauthenticated, "token is invalid")
	}

	l := &logger.Logger{Logger: log.With().Str("user_id", claims.UserID).Logger()}
	return l.WithContext(utils.WithClaims(ctx, &claims)), nil
}

type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}
