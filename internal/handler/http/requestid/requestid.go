// Package requestid provides middleware and utilities for managing HTTP
// request IDs. Each request gets a unique ID for tracing across logs.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// requestIDKey is the context key for the request ID.
	requestIDKey contextKey = "request_id"

	// Header is the HTTP header carrying the request ID.
	Header = "X-Request-Id"
)

// Middleware assigns a request ID to every request. An incoming X-Request-Id
// header is honored so upstream proxies can correlate; otherwise a new UUID
// is generated. The ID is stored in the request context and echoed in the
// response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := WithRequestID(r.Context(), reqID)
		w.Header().Set(Header, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// FromContext returns the request ID from the context, or "" if absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
