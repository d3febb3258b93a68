// Package services contains server-side business logic. This file implements
// AuthService: credential verification, session issue and the role gate
// applied to presented session tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/logging"
	"github.com/dmitrijs2005/medidesk/internal/server/auth"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
)

// AccountFinder looks up one active account by email.
type AccountFinder interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.Account, error)
}

// SessionManager issues and verifies session tokens.
type SessionManager interface {
	Issue(a *models.Account) (string, time.Time, error)
	Verify(token string) (*models.Account, error)
}

// LoginResult is what a successful login hands to the transport layer.
type LoginResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

// AuthService provides authentication-related operations:
// - Authenticate: check email/password and optionally the requested role
// - Login: Authenticate and mint a session token
// - Session, RequireAuth, RequireRole: resolve and gate a presented token
//
// It keeps no state between calls. Failed attempts are not counted and
// accounts are never locked out.
type AuthService struct {
	accounts       AccountFinder
	sessions       SessionManager
	logger         logging.Logger
	verifyPassword func(password, hash string) (bool, error)
}

func NewAuthService(accounts AccountFinder, sessions SessionManager, logger logging.Logger) *AuthService {
	return &AuthService{
		accounts:       accounts,
		sessions:       sessions,
		logger:         logger.With("module", "auth_service"),
		verifyPassword: auth.VerifyPassword,
	}
}

// Authenticate returns the account (without its hash) when email and
// password match an active account and, if required is set, the account's
// role satisfies it. required == "staff" admits the whole staff class; any
// other value must match exactly.
//
// Errors: common.ErrInvalidCredentials, common.ErrRoleMismatch,
// common.ErrStoreUnavailable.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, required models.Role) (*models.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}
	if required != "" && !required.Valid() {
		return nil, common.ErrRoleMismatch
	}

	account, err := s.accounts.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "login rejected", "email", email, "reason", "no active account")
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "account lookup failed", "email", email, "error", err)
		if errors.Is(err, common.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	if !account.Active {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "inactive account")
		return nil, common.ErrInvalidCredentials
	}

	ok, err := s.verifyPassword(password, account.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash unreadable", "email", email, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "password mismatch")
		return nil, common.ErrInvalidCredentials
	}

	if required != "" && !auth.Allowed(account.Role, required) {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "role mismatch", "role", account.Role, "required", required)
		return nil, common.ErrRoleMismatch
	}

	return account.Public(), nil
}

// Login authenticates and, on success only, issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string, required models.Role) (*LoginResult, error) {
	account, err := s.Authenticate(ctx, email, password, required)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(account)
	if err != nil {
		s.logger.Error(ctx, "issuing session failed", "email", account.Email, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login succeeded", "email", account.Email, "role", account.Role)
	return &LoginResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

// Session resolves a presented token. Any failure is
// common.ErrUnauthenticated.
func (s *AuthService) Session(token string) (*models.Account, error) {
	return s.sessions.Verify(token)
}

// RequireAuth resolves token or fails with common.ErrUnauthenticated.
func (s *AuthService) RequireAuth(token string) (*models.Account, error) {
	account, err := s.sessions.Verify(token)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	return auth.RequireAuth(account)
}

// RequireRole resolves token and checks its role against allowed:
// common.ErrUnauthenticated without a valid session, common.ErrForbidden
// when the role is not admitted.
func (s *AuthService) RequireRole(token string, allowed ...models.Role) (*models.Account, error) {
	account, err := s.RequireAuth(token)
	if err != nil {
		return nil, err
	}
	return auth.RequireRole(account, allowed...)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
