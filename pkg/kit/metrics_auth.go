package kit

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// MetricsAuth admits only requests bearing token. An empty token locks the
// endpoint entirely.
func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || !bearerMatches(r.Header.Get("Authorization"), token) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerMatches(authz, token string) bool {
	if !strings.HasPrefix(authz, bearerPrefix) {
		return false
	}
	got := strings.TrimPrefix(authz, bearerPrefix)
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
