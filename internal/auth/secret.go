package auth

import (
	"crypto/subtle"
	"net/http"
)

const keyHeader = "X-Shipper-Key"

// SharedSecret rejects requests whose X-Shipper-Key header does not match
// the configured deploy key. /health stays open for probes.
func SharedSecret(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(keyHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
