// Package middleware holds handler-agnostic HTTP middleware.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	AllowedOrigins []string

	// AllowedMethods defaults to the common verbs when empty.
	AllowedMethods []string

	// AllowedHeaders defaults to Content-Type and X-Request-Id when empty.
	AllowedHeaders []string

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int
}

// CORS returns middleware that validates the Origin header against the
// whitelist and answers preflight requests. Disallowed origins get no CORS
// headers, which makes the browser block the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = []string{"Content-Type", "X-Request-Id"}
	}
	if config.MaxAge == 0 {
		config.MaxAge = 86400
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin request, nothing to do.
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(config.AllowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
