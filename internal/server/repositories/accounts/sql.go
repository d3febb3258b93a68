package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/dbx"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
)

// SQLRepository is the fallback path: database/sql over the pgx stdlib
// driver, opened independently of the pool.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository wraps db. A nil db yields a repository that always fails
// with ErrNoConnection.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	if db == nil {
		return &SQLRepository{}
	}
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Name() string { return "database/sql" }

func (r *SQLRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Account, error) {
	if r.db == nil {
		return nil, ErrNoConnection
	}

	a, err := scanAccount(r.db.QueryRowContext(ctx, findActiveByEmailQuery, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SQLRepository) Ping(ctx context.Context) error {
	p, ok := r.db.(dbx.Pinger)
	if !ok {
		return ErrNoConnection
	}
	return p.PingContext(ctx)
}
