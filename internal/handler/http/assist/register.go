package assist

import (
	"net/http"

	assistUC "briefcast/internal/usecase/assist"
	convUC "briefcast/internal/usecase/conversation"
)

// Register registers the generate and conversation history endpoints.
func Register(mux *http.ServeMux, svc *assistUC.Service, conversations *convUC.Service) {
	mux.Handle("POST   /generate", GenerateHandler{Svc: svc})
	mux.Handle("GET    /get-conversation-titles", TitlesHandler{Svc: conversations})
	mux.Handle("GET    /get-recent-questions", QuestionsHandler{Svc: conversations})
}
