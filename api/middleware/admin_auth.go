package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/i9team/guilherme-ecommerce/api/responses"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
)

// TokenVerifier checks a bearer token and returns the admin identity it was
// issued to. Revoked and expired tokens fail verification.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (subject string, err error)
}

// AdminAuth validates a bearer token and seeds the request context with the
// authenticated admin identity.
func AdminAuth(verifier TokenVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if verifier == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verifier unavailable"))
				return
			}

			subject, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithAdminSubject(r.Context(), subject)
			if logg != nil {
				ctx = logg.WithAdminSubject(ctx, subject)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
