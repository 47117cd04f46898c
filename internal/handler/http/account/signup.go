// Package account exposes the signup and login endpoints.
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

// SignupHandler handles POST /signup.
type SignupHandler struct {
	Svc *accUC.Service
}

func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	profile, err := h.Svc.Signup(r.Context(), accUC.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Interests:  req.Interests,
		Skills:     req.Skills,
	})
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, entity.ErrEmailExists):
			respond.Error(w, http.StatusBadRequest, fmt.Errorf("Email already exists"))
		case errors.As(err, &vErr):
			respond.Error(w, http.StatusBadRequest, vErr)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, accountResponse{
		Message:  "Account created successfully",
		UserData: profile,
	})
}
