package account

import (
	"net/http"

	accUC "briefcast/internal/usecase/account"
)

// Register registers the account endpoints with the given mux.
func Register(mux *http.ServeMux, svc *accUC.Service) {
	mux.Handle("POST   /signup", SignupHandler{Svc: svc})
	mux.Handle("POST   /login", LoginHandler{Svc: svc})
}
