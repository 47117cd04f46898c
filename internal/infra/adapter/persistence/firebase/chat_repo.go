package firebase

import (
	"context"
	"fmt"
	"sort"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
)

// ChatRepo implements repository.ChatRepository over the Realtime Database
// subtree users/{uid}/chat/{key}.
type ChatRepo struct {
	client *Client
}

// NewChatRepo creates a Firebase-backed chat repository.
func NewChatRepo(client *Client) repository.ChatRepository {
	return &ChatRepo{client: client}
}

// Append stores one chat record under the given key.
func (r *ChatRepo) Append(ctx context.Context, userID, key string, rec *entity.ChatRecord) error {
	ref := r.client.DB.NewRef("users/" + userID + "/chat/" + key)
	if err := ref.Set(ctx, rec); err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}

// List returns all chat records for the user, oldest first. Keys are
// timestamp-prefixed, so lexicographic key order is chronological order.
func (r *ChatRepo) List(ctx context.Context, userID string) ([]*entity.ChatRecord, error) {
	ref := r.client.DB.NewRef("users/" + userID + "/chat")

	var raw map[string]*entity.ChatRecord
	if err := ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	if len(raw) == 0 {
		return []*entity.ChatRecord{}, nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]*entity.ChatRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, raw[k])
	}
	return records, nil
}
