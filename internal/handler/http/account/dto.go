package account

import "briefcast/internal/domain/entity"

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Interests  string `json:"interests"`
	Skills     string `json:"skills"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	Message  string              `json:"message"`
	UserData *entity.UserProfile `json:"user_data"`
}
