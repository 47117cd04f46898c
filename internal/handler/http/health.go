package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RootHandler answers the legacy liveness probe at /.
type RootHandler struct{}

// ServeHTTP returns the fixed banner clients poll to confirm the API is up.
func (RootHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Hello, API is running!")); err != nil {
		log.Printf("root: failed to write response: %v", err)
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}

// HealthHandler reports dependency health. StoreCheck probes the user store;
// it is the only dependency the server owns a connection to, so it is the
// only one checked.
type HealthHandler struct {
	StoreCheck func(ctx context.Context) error
	Version    string
}

// ServeHTTP runs the checks and returns 200 when healthy, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.StoreCheck != nil {
		if err := h.StoreCheck(ctx); err != nil {
			checks["store"] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
		} else {
			checks["store"] = CheckStatus{Status: "healthy"}
		}
	} else {
		checks["store"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		allHealthy = false
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}
