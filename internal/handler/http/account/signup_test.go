package account_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefcast/internal/domain/entity"
	haccount "briefcast/internal/handler/http/account"
	accUC "briefcast/internal/usecase/account"
)

type stubUserRepo struct {
	byEmail map[string]*entity.UserProfile
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*entity.UserProfile{}}
}

func (s *stubUserRepo) CreateUser(_ context.Context, email, _ string, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, entity.ErrEmailExists
	}
	profile.UID = "uid-1"
	profile.Email = email
	s.byEmail[email] = profile
	return profile, nil
}

func (s *stubUserRepo) GetUserByEmail(_ context.Context, email, _ string) (*entity.UserProfile, error) {
	profile, ok := s.byEmail[email]
	if !ok {
		return nil, entity.ErrInvalidCredentials
	}
	return profile, nil
}

func (s *stubUserRepo) GetProfile(_ context.Context, _ string) (*entity.UserProfile, error) {
	return nil, entity.ErrUserNotFound
}

func newMux() (*http.ServeMux, *stubUserRepo) {
	repo := newStubUserRepo()
	svc := accUC.NewService(repo, slog.New(slog.DiscardHandler))
	mux := http.NewServeMux()
	haccount.Register(mux, svc)
	return mux, repo
}

func post(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestSignupCreated(t *testing.T) {
	mux, _ := newMux()

	rr := post(t, mux, "/signup", `{
		"email": "dev@example.com",
		"password": "secret123",
		"department": "Engineering",
		"interests": "go,ai",
		"skills": "backend"
	}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Message  string              `json:"message"`
		UserData *entity.UserProfile `json:"user_data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Account created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.UserData == nil || resp.UserData.UID == "" {
		t.Errorf("user_data missing: %+v", resp.UserData)
	}
}

func TestSignupDuplicateEmailIs400(t *testing.T) {
	mux, _ := newMux()

	body := `{"email": "dev@example.com", "password": "secret123"}`
	if rr := post(t, mux, "/signup", body); rr.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d", rr.Code)
	}

	rr := post(t, mux, "/signup", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Email already exists") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestSignupMissingFieldsIs400(t *testing.T) {
	mux, _ := newMux()

	rr := post(t, mux, "/signup", `{"email": "dev@example.com"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	mux, _ := newMux()
	post(t, mux, "/signup", `{"email": "dev@example.com", "password": "secret123"}`)

	rr := post(t, mux, "/login", `{"email": "dev@example.com", "password": "secret123"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Logged in successfully") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestLoginUnknownEmailIs401(t *testing.T) {
	mux, _ := newMux()

	rr := post(t, mux, "/login", `{"email": "ghost@example.com", "password": "x"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid email or password") {
		t.Errorf("body = %s", rr.Body.String())
	}
}
