package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context with a deadline. Handlers pass the
// context on to possible-value resolvers, which observe the deadline.
// A zero timeout disables the middleware.
func Timeout(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
