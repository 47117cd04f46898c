// Package repository defines persistence interfaces for the domain layer.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"briefcast/internal/domain/entity"
)

// UserRepository abstracts the identity provider and profile store.
//
// CreateUser registers an identity and stores the profile; it returns
// entity.ErrEmailExists for duplicate emails. GetUserByEmail returns
// entity.ErrUserNotFound for unknown emails, GetProfile likewise for
// unknown IDs.
type UserRepository interface {
	CreateUser(ctx context.Context, email, password string, profile *entity.UserProfile) (*entity.UserProfile, error)
	GetUserByEmail(ctx context.Context, email, password string) (*entity.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error)
}
