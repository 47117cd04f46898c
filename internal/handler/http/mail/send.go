// Package mail exposes the transactional email endpoint.
package mail

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"briefcast/internal/handler/http/respond"
	"briefcast/internal/infra/mailer"
)

type sendRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sendResponse struct {
	Message string `json:"message"`
}

// SendHandler handles POST /send-mail, which sends the new-account welcome
// email.
type SendHandler struct {
	Mailer mailer.Mailer
	Logger *slog.Logger
}

func (h SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}
	if req.Email == "" {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("email is required"))
		return
	}

	// Delivery failures are logged, never surfaced. Email is best effort and
	// the account flow must not stall on a flaky SMTP relay.
	err := h.Mailer.Send(r.Context(), req.Email, mailer.WelcomeSubject, mailer.WelcomeBody(req.Name, req.Email))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "welcome email delivery failed",
			slog.String("to", req.Email), slog.Any("error", err))
	} else {
		h.Logger.InfoContext(r.Context(), "welcome email sent", slog.String("to", req.Email))
	}
	respond.JSON(w, http.StatusOK, sendResponse{Message: "New event email sent"})
}

// Register registers the mail endpoint with the given mux.
func Register(mux *http.ServeMux, m mailer.Mailer, logger *slog.Logger) {
	mux.Handle("POST   /send-mail", SendHandler{Mailer: m, Logger: logger})
}
