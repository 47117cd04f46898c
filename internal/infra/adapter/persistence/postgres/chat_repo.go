package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
)

// ChatRepo implements repository.ChatRepository on Postgres.
type ChatRepo struct{ db *sql.DB }

// NewChatRepo creates a Postgres-backed chat repository.
func NewChatRepo(db *sql.DB) repository.ChatRepository {
	return &ChatRepo{db: db}
}

// Append stores one chat record under the given key.
func (repo *ChatRepo) Append(ctx context.Context, userID, key string, rec *entity.ChatRecord) error {
	const query = `
INSERT INTO chat_records (user_id, key, question, response, title, ts)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.ExecContext(ctx, query,
		userID, key, rec.Question, rec.Response, rec.Title, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}

// List returns all chat records for the user, oldest first.
func (repo *ChatRepo) List(ctx context.Context, userID string) ([]*entity.ChatRecord, error) {
	const query = `
SELECT question, response, title, ts
FROM chat_records
WHERE user_id = $1
ORDER BY key ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.ChatRecord, 0, 16)
	for rows.Next() {
		var rec entity.ChatRecord
		if err := rows.Scan(&rec.Question, &rec.Response, &rec.Title, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
