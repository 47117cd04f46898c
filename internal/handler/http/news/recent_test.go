package news_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"briefcast/internal/config"
	"briefcast/internal/domain/entity"
	hnews "briefcast/internal/handler/http/news"
	"briefcast/internal/infra/search"
	newsUC "briefcast/internal/usecase/news"
)

type fixedCompleter struct{ response string }

func (f fixedCompleter) Complete(_ context.Context, _ string) (string, error) {
	return f.response, nil
}

type stubSearcher struct{ results []search.Result }

func (s stubSearcher) Search(_ context.Context, _ search.Query) ([]search.Result, error) {
	return s.results, nil
}

type stubUserRepo struct{ profile *entity.UserProfile }

func (s stubUserRepo) CreateUser(_ context.Context, _, _ string, p *entity.UserProfile) (*entity.UserProfile, error) {
	return p, nil
}

func (s stubUserRepo) GetUserByEmail(_ context.Context, _, _ string) (*entity.UserProfile, error) {
	return s.profile, nil
}

func (s stubUserRepo) GetProfile(_ context.Context, userID string) (*entity.UserProfile, error) {
	if s.profile == nil || s.profile.UID != userID {
		return nil, entity.ErrUserNotFound
	}
	return s.profile, nil
}

func newMux(modelOutput string, results []search.Result) *http.ServeMux {
	cfg := config.NewsConfig{
		MaxArticles: 10,
		RawResults:  20,
		Window:      7 * 24 * time.Hour,
	}
	users := stubUserRepo{profile: &entity.UserProfile{UID: "u1", Interests: []string{"finance"}}}
	svc := newsUC.NewService(fixedCompleter{modelOutput}, stubSearcher{results}, users, cfg,
		slog.New(slog.DiscardHandler))

	mux := http.NewServeMux()
	hnews.Register(mux, svc)
	return mux
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestRecentNewsMissingUserIDIs400(t *testing.T) {
	mux := newMux("[]", nil)

	rr := get(t, mux, "/recent-news")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "User ID is required") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestRecentNewsUnknownUserIs404(t *testing.T) {
	mux := newMux("[]", nil)

	rr := get(t, mux, "/recent-news?user_id=ghost")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestRecentNewsEmptyDigest(t *testing.T) {
	mux := newMux("[]", []search.Result{{Title: "raw"}})

	rr := get(t, mux, "/recent-news?user_id=u1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Message string               `json:"message"`
		News    []entity.NewsArticle `json:"news"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "No recent news found" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.News == nil || len(resp.News) != 0 {
		t.Errorf("news = %v", resp.News)
	}
}

func TestRecentNewsReturnsArticles(t *testing.T) {
	now := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	output := `[{"title":"Fresh story","summary":"s","url":"https://example.com","source":"example","date":"` + now + `"}]`
	mux := newMux(output, []search.Result{{Title: "raw"}})

	rr := get(t, mux, "/recent-news?user_id=u1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		News []entity.NewsArticle `json:"news"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.News) != 1 || resp.News[0].Title != "Fresh story" {
		t.Errorf("news = %v", resp.News)
	}
}
