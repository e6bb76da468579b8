package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/i9team/guilherme-ecommerce/pkg/config"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/security"
)

// revocationStore marks token ids as revoked until they would have expired
// anyway. pkg/redis.Client satisfies it.
type revocationStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	RevocationKey(tokenID string) string
}

// Session is an issued admin token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service authenticates the configured admin account and manages the token
// lifecycle.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (subject string, err error)
}

type service struct {
	admin      config.AdminConfig
	jwtCfg     config.JWTConfig
	revocation revocationStore
	now        func() time.Time
}

// NewService wires the admin auth service.
func NewService(admin config.AdminConfig, jwtCfg config.JWTConfig, revocation revocationStore) (Service, error) {
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	if revocation == nil {
		return nil, fmt.Errorf("revocation store required")
	}
	return &service{admin: admin, jwtCfg: jwtCfg, revocation: revocation, now: time.Now}, nil
}

var errBadCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

// Login checks the configured admin email and argon2id hash and issues a
// signed token. Unknown emails and bad passwords are indistinguishable.
func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errBadCredentials
	}
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin account not configured")
	}
	if !strings.EqualFold(email, s.admin.Email) {
		return nil, errBadCredentials
	}

	ok, err := security.VerifyPassword(password, s.admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, errBadCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.jwtCfg.Expiration())
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   s.admin.Email,
		Issuer:    s.jwtCfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sign token")
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the token id until its natural expiry.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	if err := s.revocation.Set(ctx, s.revocation.RevocationKey(claims.ID), "1", ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke token")
	}
	return nil
}

// VerifyToken validates signature, expiry and the revocation list.
func (s *service) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}

	revoked, err := s.revocation.Exists(ctx, s.revocation.RevocationKey(claims.ID))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check revocation")
	}
	if revoked {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "token revoked")
	}
	return claims.Subject, nil
}

func (s *service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	},
		jwt.WithIssuer(s.jwtCfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token missing id")
	}
	return claims, nil
}
