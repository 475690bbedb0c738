package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/akarpov/ai-relay/pkg/logger"
)

// RequestID assigns every request a fresh ID, carries it in the logger
// context and exposes it to the caller via the X-Request-Id header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()

		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
