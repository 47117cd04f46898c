package assist

import (
	"net/http"

	"briefcast/internal/handler/http/respond"
	convUC "briefcast/internal/usecase/conversation"
)

// TitlesHandler handles GET /get-conversation-titles.
type TitlesHandler struct {
	Svc *convUC.Service
}

func (h TitlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	titles, err := h.Svc.Titles(r.Context(), userID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, titlesResponse{Titles: titles})
}

// QuestionsHandler handles GET /get-recent-questions.
type QuestionsHandler struct {
	Svc *convUC.Service
}

func (h QuestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	questions, err := h.Svc.RecentQuestions(r.Context(), userID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, questionsResponse{RecentQuestions: questions})
}
