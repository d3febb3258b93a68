package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SessionVerifier resolves an access token into the session account.
type SessionVerifier interface {
	Verify(token string) (*models.Account, error)
}

// Pinger reports whether the account store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	healthpb.UnimplementedHealthServer
	address     string
	logger      logging.Logger
	sessions    SessionVerifier
	store       Pinger
	policy      MethodPolicy
	pingTimeout time.Duration
	watchEvery  time.Duration

	// stopTimeout bounds GracefulStop before open streams are cut.
	stopTimeout time.Duration
	// stopping is closed once Run's context is done; long-lived streams
	// select on it.
	stopping <-chan struct{}
}

func NewGRPCServer(a string, l logging.Logger, sessions SessionVerifier, store Pinger, policy MethodPolicy) *GRPCServer {
	if policy == nil {
		policy = DefaultMethodPolicy()
	}
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		sessions:    sessions,
		store:       store,
		policy:      policy,
		pingTimeout: 2 * time.Second,
		watchEvery:  5 * time.Second,
		stopTimeout: 10 * time.Second,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)

	healthpb.RegisterHealthServer(srv, s)

	s.stopping = ctx.Done()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	<-stopped
	return nil
}

// stop drains in-flight calls, then cuts whatever is still open after
// stopTimeout.
func (s *GRPCServer) stop(srv *grpc.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	timer := time.NewTimer(s.stopTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.logger.Warn(context.Background(), "graceful stop timed out, closing open streams")
		srv.Stop()
		<-done
	}
}
