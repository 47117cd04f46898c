package repository

import (
	"context"

	"briefcast/internal/domain/entity"
)

// ChatRepository stores and reads per-user conversation history.
// Records are append-only; key generation is the caller's responsibility.
type ChatRepository interface {
	// Append stores a chat record under the given key for the user.
	Append(ctx context.Context, userID, key string, rec *entity.ChatRecord) error

	// List returns all chat records for the user in key order (oldest first).
	List(ctx context.Context, userID string) ([]*entity.ChatRecord, error)
}
