package auth

import (
	"context"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
)

// Allowed reports whether role is admitted by the allowed set. An allowed
// entry of "staff" admits the whole staff class, not only the literal label.
func Allowed(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
		if a == models.RoleStaff && role.IsStaff() {
			return true
		}
	}
	return false
}

// RequireAuth passes a resolved session through, or fails with
// common.ErrUnauthenticated when there is none.
func RequireAuth(a *models.Account) (*models.Account, error) {
	if a == nil {
		return nil, common.ErrUnauthenticated
	}
	return a, nil
}

// RequireRole is RequireAuth followed by a role check against allowed.
func RequireRole(a *models.Account, allowed ...models.Role) (*models.Account, error) {
	a, err := RequireAuth(a)
	if err != nil {
		return nil, err
	}
	if !Allowed(a.Role, allowed...) {
		return nil, common.ErrForbidden
	}
	return a, nil
}

type ctxKey struct{}

// WithAccount stores the session account in ctx.
func WithAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AccountFromContext returns the account stored by WithAccount, if any.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(ctxKey{}).(*models.Account)
	return a, ok && a != nil
}
