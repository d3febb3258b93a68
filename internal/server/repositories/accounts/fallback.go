package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
)

// Fallback tries its paths in order. A path that answers, with an account
// or with common.ErrorNotFound, ends the search; only a failing path hands
// over to the next one. Paths are tried sequentially, never in parallel.
type Fallback struct {
	paths   []Repository
	timeout time.Duration
	logger  logging.Logger
}

// NewFallback chains paths in priority order. timeout bounds each path
// attempt separately; zero means no extra deadline.
func NewFallback(logger logging.Logger, timeout time.Duration, paths ...Repository) *Fallback {
	return &Fallback{
		paths:   paths,
		timeout: timeout,
		logger:  logger.With("module", "accounts_fallback"),
	}
}

func (f *Fallback) Name() string { return "fallback" }

func (f *Fallback) FindActiveByEmail(ctx context.Context, email string) (*models.Account, error) {
	var errs []error

	for _, p := range f.paths {
		a, err := f.findOn(ctx, p, email)
		if err == nil || errors.Is(err, common.ErrorNotFound) {
			return a, err
		}

		f.logger.Warn(ctx, "account lookup path failed", "path", p.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	return nil, unavailable(errs)
}

func (f *Fallback) findOn(ctx context.Context, p Repository, email string) (*models.Account, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return p.FindActiveByEmail(ctx, email)
}

// Ping succeeds as soon as one path answers.
func (f *Fallback) Ping(ctx context.Context) error {
	var errs []error

	for _, p := range f.paths {
		err := p.Ping(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	return unavailable(errs)
}

func unavailable(errs []error) error {
	if len(errs) == 0 {
		return common.ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, errors.Join(errs...))
}
