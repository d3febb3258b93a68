package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is the lifetime of every session token.
const SessionTTL = 8 * time.Hour

// minSecretLength matches config.MinSecretKeyLength.
const minSecretLength = 32

// SessionClaims is the signed snapshot of an account carried by the token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	Active bool        `json:"isActive"`

	// ExpiresAtMs is the expiry in Unix milliseconds. The registered exp
	// claim only has whole seconds, so it is rounded up and this value is
	// the one enforced.
	ExpiresAtMs int64 `json:"exp_ms"`
}

// SessionIssuer signs and verifies stateless session tokens (HS256). There
// is no server-side session store and no revocation list: a token stays
// valid until it expires, even if the account is deactivated meanwhile.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionIssuer refuses secrets shorter than 32 characters.
func NewSessionIssuer(secret string) (*SessionIssuer, error) {
	if len(secret) < minSecretLength {
		return nil, common.ErrSecretTooShort
	}
	return &SessionIssuer{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a snapshot of a's public fields and returns the token with its
// expiry instant. The issue instant is recorded to the millisecond, so the
// token is accepted on [now, now+ttl) at that precision.
func (s *SessionIssuer) Issue(a *models.Account) (string, time.Time, error) {
	now := s.now().Truncate(time.Millisecond)
	expiresAt := now.Add(s.ttl)

	expSeconds := expiresAt.Truncate(time.Second)
	if expSeconds.Before(expiresAt) {
		expSeconds = expSeconds.Add(time.Second)
	}

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expSeconds),
			ID:        uuid.NewString(),
		},
		Email:  a.Email,
		Name:   a.Name,
		Role:   a.Role,
		Active: a.Active,

		ExpiresAtMs: expiresAt.UnixMilli(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the account snapshot carried by token. Malformed tokens,
// bad signatures, other algorithms and lapsed expiry all yield
// common.ErrUnauthenticated and nothing else.
func (s *SessionIssuer) Verify(token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, common.ErrUnauthenticated
	}

	if claims.ExpiresAtMs == 0 || !s.now().Before(time.UnixMilli(claims.ExpiresAtMs)) {
		return nil, common.ErrUnauthenticated
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, common.ErrUnauthenticated
	}

	return &models.Account{
		ID:     claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		Active: claims.Active,
	}, nil
}
