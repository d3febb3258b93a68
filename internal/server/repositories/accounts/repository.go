// Package accounts reads credentialed accounts from PostgreSQL. The same
// lookup is available through a pooled pgx client and through a plain
// database/sql connection; Fallback chains them.
package accounts

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/medidesk/internal/server/models"
)

// ErrNoConnection means a path was never connected, so it cannot answer.
var ErrNoConnection = errors.New("no usable connection")

// Repository finds one active account by its login email.
//
// FindActiveByEmail returns common.ErrorNotFound when no active account
// matches. Any other error means the path itself could not answer.
type Repository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.Account, error)
	Ping(ctx context.Context) error
	Name() string
}

const findActiveByEmailQuery = `SELECT id::text, email, name, role, is_active, password_hash
	FROM users
	WHERE email = $1 AND is_active = true
	LIMIT 1`

// scanner is satisfied by both pgx.Row and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var (
		a    models.Account
		role string
	)
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &role, &a.Active, &a.PasswordHash); err != nil {
		return nil, err
	}
	a.Role = models.Role(role)
	return &a, nil
}
