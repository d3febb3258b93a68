package grpc

import (
	"context"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/auth"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// MethodPolicy maps a full method name to the roles allowed to call it.
// Methods absent from the map need no session. An empty role list admits
// any authenticated caller.
type MethodPolicy map[string][]models.Role

const healthWatchMethod = "/grpc.health.v1.Health/Watch"

// DefaultMethodPolicy leaves Check open for load balancers and requires a
// session for the long-lived Watch stream.
func DefaultMethodPolicy() MethodPolicy {
	return MethodPolicy{
		healthWatchMethod: {models.RoleAdmin, models.RoleStaff},
	}
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// authorize applies the policy for method. It returns ctx unchanged for
// open methods, or ctx carrying the session account.
func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	allowed, guarded := s.policy[method]
	if !guarded {
		return ctx, nil
	}

	accessToken := accessTokenFromContext(ctx)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	account, err := s.sessions.Verify(accessToken)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if len(allowed) > 0 && !auth.Allowed(account.Role, allowed...) {
		s.logger.Info(ctx, "call denied", "method", method, "role", account.Role)
		return nil, status.Error(codes.PermissionDenied, "insufficient role")
	}

	return auth.WithAccount(ctx, account), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type authorizedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authorizedStream) Context() context.Context { return a.ctx }

func (s *GRPCServer) accessTokenStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authorizedStream{ServerStream: ss, ctx: ctx})
}
