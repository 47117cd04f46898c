// Package assist exposes the question-answering and conversation history
// endpoints.
package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"briefcast/internal/domain/entity"
	"briefcast/internal/handler/http/respond"
	assistUC "briefcast/internal/usecase/assist"
)

// GenerateHandler handles POST /generate.
type GenerateHandler struct {
	Svc *assistUC.Service
}

func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}
	if req.Prompt == "" || req.UserID == "" {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("prompt and user_id are required"))
		return
	}

	response, err := h.Svc.Generate(r.Context(), req.UserID, req.Prompt)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respond.Error(w, http.StatusNotFound, fmt.Errorf("User not found"))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, generateResponse{Response: response})
}
