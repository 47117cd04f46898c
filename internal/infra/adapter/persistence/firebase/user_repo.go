package firebase

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
)

// UserRepo implements repository.UserRepository over Firebase Auth plus the
// Realtime Database profile record at users/{uid}/info.
type UserRepo struct {
	client *Client
}

// NewUserRepo creates a Firebase-backed user repository.
func NewUserRepo(client *Client) repository.UserRepository {
	return &UserRepo{client: client}
}

// CreateUser registers the identity with Firebase Auth and stores the
// profile document. Duplicate emails map to entity.ErrEmailExists.
func (r *UserRepo) CreateUser(ctx context.Context, email, password string, profile *entity.UserProfile) (*entity.UserProfile, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	user, err := r.client.Auth.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, entity.ErrEmailExists
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}

	profile.UID = user.UID
	profile.Email = email
	if err := r.infoRef(user.UID).Set(ctx, profile); err != nil {
		return nil, fmt.Errorf("CreateUser: store profile: %w", err)
	}
	return profile, nil
}

// GetUserByEmail resolves the identity and loads the stored profile.
// Password verification is delegated to the identity provider; this backend
// maps an unknown email to entity.ErrInvalidCredentials so login responses
// never reveal whether the account exists.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email, _ string) (*entity.UserProfile, error) {
	user, err := r.client.Auth.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return r.GetProfile(ctx, user.UID)
}

// GetProfile loads the profile document for a user ID. A missing document
// maps to entity.ErrUserNotFound.
func (r *UserRepo) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	if err := r.infoRef(userID).Get(ctx, &profile); err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	// A missing node decodes to the zero value; the stored record always
	// carries its UID.
	if profile.UID == "" {
		return nil, entity.ErrUserNotFound
	}
	return &profile, nil
}

func (r *UserRepo) infoRef(uid string) *db.Ref {
	return r.client.DB.NewRef("users/" + uid + "/info")
}
