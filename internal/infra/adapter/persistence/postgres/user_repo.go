// Package postgres implements the user and chat repositories on Postgres.
// It is the self-hosted alternative to the Firebase backend; because there
// is no external identity provider to delegate to, it stores bcrypt password
// hashes itself.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
)

// uniqueViolation is the Postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

// UserRepo implements repository.UserRepository on Postgres.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

// CreateUser stores the identity and profile. Duplicate emails map to
// entity.ErrEmailExists.
func (repo *UserRepo) CreateUser(ctx context.Context, email, password string, profile *entity.UserProfile) (*entity.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("CreateUser: hash password: %w", err)
	}

	profile.UID = uuid.NewString()
	profile.Email = email

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("CreateUser: marshal profile: %w", err)
	}

	const query = `
INSERT INTO users (uid, email, password_hash, profile)
VALUES ($1, $2, $3, $4)`
	_, err = repo.db.ExecContext(ctx, query, profile.UID, email, string(hash), profileJSON)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, entity.ErrEmailExists
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return profile, nil
}

// GetUserByEmail verifies the password against the stored bcrypt hash and
// returns the profile. Unknown emails and bad passwords both map to
// entity.ErrInvalidCredentials.
func (repo *UserRepo) GetUserByEmail(ctx context.Context, email, password string) (*entity.UserProfile, error) {
	const query = `
SELECT password_hash, profile
FROM users
WHERE email = $1
LIMIT 1`
	var hash string
	var profileJSON []byte
	err := repo.db.QueryRowContext(ctx, query, email).Scan(&hash, &profileJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	var profile entity.UserProfile
	if err := json.Unmarshal(profileJSON, &profile); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetProfile loads the profile by user ID. Missing rows map to
// entity.ErrUserNotFound.
func (repo *UserRepo) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	const query = `
SELECT profile
FROM users
WHERE uid = $1
LIMIT 1`
	var profileJSON []byte
	err := repo.db.QueryRowContext(ctx, query, userID).Scan(&profileJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}

	var profile entity.UserProfile
	if err := json.Unmarshal(profileJSON, &profile); err != nil {
		return nil, fmt.Errorf("GetProfile: unmarshal profile: %w", err)
	}
	return &profile, nil
}
