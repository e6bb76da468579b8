package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/i9team/guilherme-ecommerce/pkg/config"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/security"
)

type memRevocation struct {
	revoked map[string]bool
}

func newMemRevocation() *memRevocation {
	return &memRevocation{revoked: map[string]bool{}}
}

func (m *memRevocation) Set(_ context.Context, key string, _ any, _ time.Duration) error {
	m.revoked[key] = true
	return nil
}

func (m *memRevocation) Exists(_ context.Context, key string) (bool, error) {
	return m.revoked[key], nil
}

func (m *memRevocation) RevocationKey(tokenID string) string {
	return "gm:revoked:" + tokenID
}

func newTestService(t *testing.T, password string) (Service, *memRevocation) {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	revocation := newMemRevocation()
	svc, err := NewService(
		config.AdminConfig{Email: "admin@loja.com", PasswordHash: hash},
		config.JWTConfig{Secret: "test-secret", Issuer: "guilherme-ecommerce", ExpirationMinutes: 60},
		revocation,
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, revocation
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "s3cret")
	ctx := context.Background()

	session, err := svc.Login(ctx, "Admin@Loja.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" || !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("unexpected session: %+v", session)
	}

	subject, err := svc.VerifyToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if subject != "admin@loja.com" {
		t.Fatalf("subject = %q", subject)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "s3cret")
	ctx := context.Background()

	cases := []struct{ email, password string }{
		{"admin@loja.com", "wrong"},
		{"other@loja.com", "s3cret"},
		{"", "s3cret"},
		{"admin@loja.com", ""},
	}
	for _, c := range cases {
		_, err := svc.Login(ctx, c.email, c.password)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("login(%q, %q): expected unauthorized, got %v", c.email, c.password, err)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "s3cret")
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin@loja.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = svc.VerifyToken(ctx, session.Token)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected revoked token rejection, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "s3cret")
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin@loja.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Move the service clock past expiry.
	svc.(*service).now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.VerifyToken(ctx, session.Token)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestVerifyTokenRejectsForgedSignature(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "s3cret")
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin@loja.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	parts := strings.Split(session.Token, ".")
	forged := parts[0] + "." + parts[1] + ".AAAA"
	if _, err := svc.VerifyToken(ctx, forged); pkgerrors.As(err) == nil {
		t.Fatalf("expected forged token rejection")
	}
}
