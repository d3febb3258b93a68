package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// poolQuerier is the part of *pgxpool.Pool the repository needs.
type poolQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PoolRepository is the primary path: a managed pgx connection pool.
type PoolRepository struct {
	pool poolQuerier
}

// NewPoolRepository wraps pool. A nil pool yields a repository that always
// fails with ErrNoConnection, letting the fallback take over.
func NewPoolRepository(pool *pgxpool.Pool) *PoolRepository {
	if pool == nil {
		return &PoolRepository{}
	}
	return &PoolRepository{pool: pool}
}

func (r *PoolRepository) Name() string { return "pgxpool" }

func (r *PoolRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Account, error) {
	if r.pool == nil {
		return nil, ErrNoConnection
	}

	a, err := scanAccount(r.pool.QueryRow(ctx, findActiveByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PoolRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return ErrNoConnection
	}
	return r.pool.Ping(ctx)
}
