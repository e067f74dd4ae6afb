package services

import (
	"context"
	"testing"
	"time"

	"corazones/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher treats the stored hash as "hash:" + password.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeIssuer records the issued subject.
type fakeIssuer struct {
	lastSubject string
	lastEmail   string
}

func (f *fakeIssuer) Issue(subject, email string, expiry time.Duration) (string, error) {
	f.lastSubject = subject
	f.lastEmail = email
	return "token-for-" + subject, nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := NewAuthService("Admin@Example.com", "hash:secret", fakeHasher{}, issuer, time.Hour)

		token, err := svc.Login(ctx, "admin@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "token-for-admin", token)
		assert.Equal(t, "admin", issuer.lastSubject)
		assert.Equal(t, "admin@example.com", issuer.lastEmail)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		svc := NewAuthService("admin@example.com", "hash:secret", fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.Login(ctx, "  ADMIN@example.COM ", "secret")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService("admin@example.com", "hash:secret", fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.Login(ctx, "admin@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong email", func(t *testing.T) {
		svc := NewAuthService("admin@example.com", "hash:secret", fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.Login(ctx, "intruder@example.com", "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unconfigured admin rejects everyone", func(t *testing.T) {
		svc := NewAuthService("", "", fakeHasher{}, &fakeIssuer{}, time.Hour)
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
