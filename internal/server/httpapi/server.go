// Package httpapi exposes the login, logout and session endpoints over HTTP
// and provides middleware that gates downstream handlers by session role.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"github.com/dmitrijs2005/medidesk/internal/server/services"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxRequestBody    = 1 << 20
)

// Authenticator is the slice of services.AuthService used by the handlers.
type Authenticator interface {
	Login(ctx context.Context, email, password string, required models.Role) (*services.LoginResult, error)
	Session(token string) (*models.Account, error)
	RequireRole(token string, allowed ...models.Role) (*models.Account, error)
}

// Pinger reports whether the account store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	addr          string
	auth          Authenticator
	store         Pinger
	logger        logging.Logger
	secureCookies bool
	sessionTTL    time.Duration
	handler       http.Handler
}

// NewServer builds the router. secureCookies adds the Secure attribute to
// the session cookie and is expected to be true everywhere but development.
func NewServer(addr string, a Authenticator, store Pinger, logger logging.Logger, secureCookies bool, sessionTTL time.Duration) *Server {
	s := &Server{
		addr:          addr,
		auth:          a,
		store:         store,
		logger:        logger.With("module", "http"),
		secureCookies: secureCookies,
		sessionTTL:    sessionTTL,
	}
	s.handler = s.buildRouter()
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	// Requests keep ctx values but not its cancellation, so in-flight work
	// drains under Shutdown.
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
