// Package news exposes the personalized news digest endpoint.
package news

import (
	"errors"
	"fmt"
	"net/http"

	"briefcast/internal/domain/entity"
	"briefcast/internal/handler/http/respond"
	newsUC "briefcast/internal/usecase/news"
)

type newsResponse struct {
	Message string               `json:"message,omitempty"`
	News    []entity.NewsArticle `json:"news"`
}

// RecentHandler handles GET /recent-news.
type RecentHandler struct {
	Svc *newsUC.Service
}

func (h RecentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("User ID is required"))
		return
	}

	articles, err := h.Svc.Recent(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respond.Error(w, http.StatusNotFound, fmt.Errorf("User not found"))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if len(articles) == 0 {
		respond.JSON(w, http.StatusOK, newsResponse{
			Message: "No recent news found",
			News:    []entity.NewsArticle{},
		})
		return
	}

	respond.JSON(w, http.StatusOK, newsResponse{News: articles})
}

// Register registers the news endpoint with the given mux.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	mux.Handle("GET    /recent-news", RecentHandler{Svc: svc})
}
