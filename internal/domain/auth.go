package domain

import (
	"context"
	"time"
)

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// PasswordHasher hashes and verifies passwords. Implementations may use
// bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthService authenticates the administrator for the admin endpoints.
type AuthService interface {
	// Login returns a signed token, or ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}
