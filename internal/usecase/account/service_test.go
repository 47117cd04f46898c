package account_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"briefcast/internal/domain/entity"
	accUC "briefcast/internal/usecase/account"
)

// in-memory UserRepository stub
type stubUserRepo struct {
	byEmail map[string]*entity.UserProfile
	byUID   map[string]*entity.UserProfile
	nextID  int
	err     error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*entity.UserProfile{},
		byUID:   map[string]*entity.UserProfile{},
		nextID:  1,
	}
}

func (s *stubUserRepo) CreateUser(_ context.Context, email, _ string, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, exists := s.byEmail[email]; exists {
		return nil, entity.ErrEmailExists
	}
	profile.UID = "uid-" + string(rune('0'+s.nextID))
	s.nextID++
	profile.Email = email
	s.byEmail[email] = profile
	s.byUID[profile.UID] = profile
	return profile, nil
}

func (s *stubUserRepo) GetUserByEmail(_ context.Context, email, _ string) (*entity.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	profile, ok := s.byEmail[email]
	if !ok {
		return nil, entity.ErrInvalidCredentials
	}
	return profile, nil
}

func (s *stubUserRepo) GetProfile(_ context.Context, userID string) (*entity.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	profile, ok := s.byUID[userID]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return profile, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSignupSplitsListsAndStoresProfile(t *testing.T) {
	svc := accUC.NewService(newStubUserRepo(), testLogger())

	profile, err := svc.Signup(context.Background(), accUC.SignupInput{
		Email:      "dev@example.com",
		Password:   "secret123",
		Department: "Engineering",
		Interests:  "go, distributed systems ,ai",
		Skills:     "backend,sql",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if profile.UID == "" {
		t.Error("UID not assigned")
	}
	if diff := cmp.Diff([]string{"go", "distributed systems", "ai"}, profile.Interests); diff != "" {
		t.Errorf("interests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"backend", "sql"}, profile.Skills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := accUC.NewService(newStubUserRepo(), testLogger())

	in := accUC.SignupInput{Email: "dev@example.com", Password: "secret123"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, err := svc.Signup(context.Background(), in)
	if !errors.Is(err, entity.ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := accUC.NewService(newStubUserRepo(), testLogger())

	cases := []struct {
		name string
		in   accUC.SignupInput
	}{
		{"missing email", accUC.SignupInput{Password: "secret123"}},
		{"missing password", accUC.SignupInput{Email: "a@b.com"}},
		{"short password", accUC.SignupInput{Email: "a@b.com", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.in)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := accUC.NewService(newStubUserRepo(), testLogger())

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginReturnsProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := accUC.NewService(repo, testLogger())

	created, err := svc.Signup(context.Background(), accUC.SignupInput{
		Email:    "dev@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	got, err := svc.Login(context.Background(), "dev@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.UID != created.UID {
		t.Errorf("want UID %q, got %q", created.UID, got.UID)
	}
}
