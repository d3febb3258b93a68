// Package server wires the account store, session issuer and transports
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/auth"
	"github.com/dmitrijs2005/medidesk/internal/server/config"
	"github.com/dmitrijs2005/medidesk/internal/server/httpapi"
	"github.com/dmitrijs2005/medidesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/medidesk/internal/server/services"

	gs "github.com/dmitrijs2005/medidesk/internal/server/grpc"
)

// test seams
var (
	logOutput io.Writer = os.Stdout

	newRepositoryManager = func(ctx context.Context, cfg *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
		return repomanager.NewPostgresRepositoryManager(ctx, cfg, l)
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	authService *services.AuthService
	sessions    *auth.SessionIssuer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	sessions, err := auth.NewSessionIssuer(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("session issuer init error: %w", err)
	}

	rm, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.RunMigrations {
		logger.Info(ctx, "Running migrations...")
		if err := rm.RunMigrations(ctx); err != nil {
			rm.Close()
			return nil, err
		}
	}

	as := services.NewAuthService(rm.Accounts(), sessions, logger)

	return &App{config: c, logger: logger, repos: rm, authService: as, sessions: sessions}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP and gRPC servers and blocks until ctx is cancelled,
// a signal arrives or either server fails. The store is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.repos.Close()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	store := app.repos.Accounts()

	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP, app.authService, store, app.logger,
		!app.config.IsDevelopment(), auth.SessionTTL)
	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessions, store, nil)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, f func(context.Context) error) {
		defer wg.Done()
		if err := f(ctx); err != nil {
			app.logger.Error(ctx, "server stopped with error", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", httpServer.Run)
	go run("grpc", grpcServer.Run)
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
