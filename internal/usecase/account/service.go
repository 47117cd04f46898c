// Package account implements signup and login on top of the user repository.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
)

// SignupInput carries the fields accepted at registration time.
type SignupInput struct {
	Email      string
	Password   string
	Department string
	Interests  string
	Skills     string
}

// Service coordinates account operations.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(users repository.UserRepository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Signup registers a new user and stores the profile document. The
// comma-separated interest and skill strings are stored as lists.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.UserProfile, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, &entity.ValidationError{Field: "email", Message: "email is required"}
	}
	if in.Password == "" {
		return nil, &entity.ValidationError{Field: "password", Message: "password is required"}
	}
	if len(in.Password) < 6 {
		return nil, &entity.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}

	profile := &entity.UserProfile{
		Email:      email,
		Department: strings.TrimSpace(in.Department),
		Interests:  entity.SplitList(in.Interests),
		Skills:     entity.SplitList(in.Skills),
	}

	created, err := s.users.CreateUser(ctx, email, in.Password, profile)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("uid", created.UID))
	return created, nil
}

// Login verifies credentials and returns the stored profile.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &entity.ValidationError{Field: "email", Message: "email and password are required"}
	}

	profile, err := s.users.GetUserByEmail(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("uid", profile.UID))
	return profile, nil
}
