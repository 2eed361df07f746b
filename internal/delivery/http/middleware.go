package delivery

import (
	"net/http"

	httpresponse "github.com/boekwinkel/order_service/internal/lib/http"
)

const apiKeyHeader = "X-API-Key"

// APIKey guards the API routes. An empty configured key disables the check
// (local profile).
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(apiKeyHeader)
			if provided == "" {
				httpresponse.Error(w, http.StatusUnauthorized, "missing API key")
				return
			}
			if provided != key {
				httpresponse.Error(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
