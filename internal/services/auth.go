package services

import (
	"context"
	"strings"
	"time"

	"corazones/internal/domain"
)

type authService struct {
	adminEmail        string
	adminPasswordHash string
	hasher            domain.PasswordHasher
	issuer            domain.TokenIssuer
	tokenExpiry       time.Duration
}

// NewAuthService creates an AuthService for the single env-seeded
// administrator credential.
func NewAuthService(adminEmail, adminPasswordHash string, hasher domain.PasswordHasher, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		adminEmail:        strings.TrimSpace(strings.ToLower(adminEmail)),
		adminPasswordHash: adminPasswordHash,
		hasher:            hasher,
		issuer:            issuer,
		tokenExpiry:       tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if s.adminEmail == "" || s.adminPasswordHash == "" {
		// No admin configured; nobody can log in.
		return "", domain.ErrInvalidCredentials
	}
	if email != s.adminEmail {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.adminPasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue("admin", email, s.tokenExpiry)
}
