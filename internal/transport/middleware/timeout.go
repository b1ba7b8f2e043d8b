package middleware

import (
	"net/http"
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
)

// RequestTimeout bounds the request context. Repositories observe it through
// the context they receive.
func RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := internal.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
