// Package repomanager opens both PostgreSQL paths (a pgx pool and a plain
// database/sql connection), chains them for account lookups and runs the
// embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/config"
	"github.com/dmitrijs2005/medidesk/internal/server/migrations"
	"github.com/dmitrijs2005/medidesk/internal/server/repositories/accounts"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Seams for tests.
var (
	newPool = pgxpool.New
	openDB  = sql.Open

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// PostgresRepositoryManager vends the account repository backed by
// PostgreSQL.
type PostgresRepositoryManager struct {
	pool     *pgxpool.Pool
	db       *sql.DB
	accounts *accounts.Fallback
	logger   logging.Logger
}

// NewPostgresRepositoryManager opens the pooled path on cfg.DatabaseDSN and
// the direct path on cfg.DirectDSN(). A path that cannot be opened is left
// out and logged; the manager is only refused when neither path opens.
func NewPostgresRepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*PostgresRepositoryManager, error) {
	m := &PostgresRepositoryManager{logger: logger.With("module", "repomanager")}

	pool, poolErr := newPool(ctx, cfg.DatabaseDSN)
	if poolErr != nil {
		m.logger.Warn(ctx, "pgx pool unavailable, relying on direct connection", "error", poolErr)
	} else {
		m.pool = pool
	}

	db, dbErr := openDB("pgx", cfg.DirectDSN())
	if dbErr != nil {
		m.logger.Warn(ctx, "direct connection unavailable, relying on pgx pool", "error", dbErr)
	} else {
		m.db = db
	}

	if m.pool == nil && m.db == nil {
		return nil, fmt.Errorf("db init error: %w", errors.Join(poolErr, dbErr, errors.New("no store path available")))
	}

	m.accounts = accounts.NewFallback(logger, cfg.StoreTimeout,
		accounts.NewPoolRepository(m.pool),
		accounts.NewSQLRepository(m.db),
	)

	return m, nil
}

// Accounts returns the primary→fallback account repository.
func (m *PostgresRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

// RunMigrations applies the embedded migrations over the direct connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("migration error: %w", accounts.ErrNoConnection)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Close releases both paths. It is safe to call more than once.
func (m *PostgresRepositoryManager) Close() {
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			m.logger.Warn(context.Background(), "closing direct connection", "error", err)
		}
		m.db = nil
	}
}
