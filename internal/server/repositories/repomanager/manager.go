package repomanager

import (
	"context"

	"github.com/dmitrijs2005/medidesk/internal/server/repositories/accounts"
)

// RepositoryManager owns the store handles for the lifetime of the process.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Close()
}
