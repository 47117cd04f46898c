package assist_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefcast/internal/domain/entity"
	hassist "briefcast/internal/handler/http/assist"
	"briefcast/internal/infra/search"
	assistUC "briefcast/internal/usecase/assist"
	convUC "briefcast/internal/usecase/conversation"
)

// scriptedCompleter returns canned responses in order.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	if len(s.responses) == 0 {
		return "", fmt.Errorf("no scripted response for call %d", s.calls)
	}
	out := s.responses[0]
	s.responses = s.responses[1:]
	return out, nil
}

type stubSearcher struct {
	results []search.Result
}

func (s *stubSearcher) Search(_ context.Context, _ search.Query) ([]search.Result, error) {
	return s.results, nil
}

type stubUserRepo struct {
	profile *entity.UserProfile
}

func (s *stubUserRepo) CreateUser(_ context.Context, _, _ string, p *entity.UserProfile) (*entity.UserProfile, error) {
	return p, nil
}

func (s *stubUserRepo) GetUserByEmail(_ context.Context, _, _ string) (*entity.UserProfile, error) {
	return s.profile, nil
}

func (s *stubUserRepo) GetProfile(_ context.Context, userID string) (*entity.UserProfile, error) {
	if s.profile == nil || s.profile.UID != userID {
		return nil, entity.ErrUserNotFound
	}
	return s.profile, nil
}

type stubChatRepo struct {
	records []*entity.ChatRecord
}

func (s *stubChatRepo) Append(_ context.Context, _, _ string, rec *entity.ChatRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *stubChatRepo) List(_ context.Context, _ string) ([]*entity.ChatRecord, error) {
	return s.records, nil
}

func newMux(completer *scriptedCompleter, searcher *stubSearcher, chats *stubChatRepo) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	users := &stubUserRepo{profile: &entity.UserProfile{
		UID:        "u1",
		Department: "Finance",
		Interests:  []string{"finance"},
	}}
	conversations := convUC.NewService(chats, logger)
	svc := assistUC.NewService(completer, searcher, users, conversations, 5, logger)

	mux := http.NewServeMux()
	hassist.Register(mux, svc, conversations)
	return mux
}

func postGenerate(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestGenerateEndToEnd(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		"Yes",
		`{"action": "web_search", "input": "latest stock news"}`,
		`{"action": "final", "answer": "Markets rallied."}`,
		"three line summary",
		"overall summary text",
	}}
	searcher := &stubSearcher{results: []search.Result{
		{Title: "Stocks climb", URL: "https://example.com/a", Content: "up"},
	}}
	mux := newMux(completer, searcher, &stubChatRepo{})

	rr := postGenerate(t, mux, `{"prompt":"latest stock news","user_id":"u1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"Top 5 Sources", "Overall Summary"} {
		if !strings.Contains(resp.Response, want) {
			t.Errorf("response missing %q:\n%s", want, resp.Response)
		}
	}
}

func TestGenerateRejectionPath(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"No"}}
	chats := &stubChatRepo{}
	mux := newMux(completer, &stubSearcher{}, chats)

	rr := postGenerate(t, mux, `{"prompt":"pasta recipes","user_id":"u1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "doesn't seem to be related") {
		t.Errorf("want rejection message, got %s", rr.Body.String())
	}
	if completer.calls != 1 {
		t.Errorf("want 1 model call, got %d", completer.calls)
	}
	if len(chats.records) != 1 {
		t.Errorf("rejection not logged")
	}
}

func TestGenerateUnknownUserIs404(t *testing.T) {
	mux := newMux(&scriptedCompleter{}, &stubSearcher{}, &stubChatRepo{})

	rr := postGenerate(t, mux, `{"prompt":"q","user_id":"ghost"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "User not found") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestGenerateMissingFieldsIs400(t *testing.T) {
	mux := newMux(&scriptedCompleter{}, &stubSearcher{}, &stubChatRepo{})

	for _, body := range []string{`{}`, `{"prompt":"q"}`, `{"user_id":"u1"}`, `not json`} {
		rr := postGenerate(t, mux, body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestConversationEndpoints(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"No", "No"}}
	chats := &stubChatRepo{}
	mux := newMux(completer, &stubSearcher{}, chats)

	postGenerate(t, mux, `{"prompt":"first question","user_id":"u1"}`)
	postGenerate(t, mux, `{"prompt":"second question","user_id":"u1"}`)

	req := httptest.NewRequest(http.MethodGet, "/get-recent-questions?user_id=u1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("questions status = %d", rr.Code)
	}
	var qResp struct {
		RecentQuestions []string `json:"recent_questions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &qResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(qResp.RecentQuestions) != 2 || qResp.RecentQuestions[0] != "first question" {
		t.Errorf("questions = %v", qResp.RecentQuestions)
	}

	req = httptest.NewRequest(http.MethodGet, "/get-conversation-titles?user_id=u1", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("titles status = %d", rr.Code)
	}
	var tResp struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &tResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tResp.Titles) != 1 || tResp.Titles[0] != "AI Response" {
		t.Errorf("titles = %v", tResp.Titles)
	}
}
