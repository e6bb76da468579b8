package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/i9team/guilherme-ecommerce/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"

	// Inherited IDs longer than this are discarded and replaced.
	maxInheritedIDLen = 64
)

// RequestID assigns every request an ID, reusing the caller's X-Request-Id
// when it looks sane, and threads it through the response header and the
// request-scoped logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" || len(reqID) > maxInheritedIDLen {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
