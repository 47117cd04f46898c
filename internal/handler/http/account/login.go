package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"briefcast/internal/domain/entity"
	"briefcast/internal/handler/http/respond"
	accUC "briefcast/internal/usecase/account"
)

// LoginHandler handles POST /login.
type LoginHandler struct {
	Svc *accUC.Service
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	profile, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		// An unknown email and a wrong password produce the same response so
		// the endpoint never confirms whether an account exists.
		case errors.Is(err, entity.ErrInvalidCredentials),
			errors.Is(err, entity.ErrUserNotFound):
			respond.Error(w, http.StatusUnauthorized, fmt.Errorf("Invalid email or password"))
		case errors.As(err, &vErr):
			respond.Error(w, http.StatusBadRequest, vErr)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, accountResponse{
		Message:  "Logged in successfully",
		UserData: profile,
	})
}
