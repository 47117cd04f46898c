// Package conversation records question/answer exchanges per user and reads
// them back for history views.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"briefcast/internal/domain/entity"
	"briefcast/internal/repository"
	"briefcast/internal/resilience/retry"
)

// recentQuestionLimit bounds the question list returned for history views.
const recentQuestionLimit = 10

// timestampLayout is the string form stored on each record.
const timestampLayout = "2006-01-02T150405"

// Service implements chat history operations.
type Service struct {
	chats  repository.ChatRepository
	retry  retry.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a conversation service.
func NewService(chats repository.ChatRepository, logger *slog.Logger) *Service {
	return &Service{
		chats:  chats,
		retry:  retry.StoreConfig(),
		logger: logger,
		now:    time.Now,
	}
}

// Log appends one exchange to the user's history. The record key embeds the
// timestamp for chronological ordering plus a random suffix so that two
// exchanges in the same second never overwrite each other.
func (s *Service) Log(ctx context.Context, userID, question, response, title string) error {
	now := s.now().UTC()
	key := newKey(now)
	rec := &entity.ChatRecord{
		Question:  question,
		Response:  response,
		Title:     title,
		Timestamp: now.Format(timestampLayout),
	}

	err := retry.WithBackoff(ctx, s.retry, func() error {
		return s.chats.Append(ctx, userID, key, rec)
	})
	if err != nil {
		return fmt.Errorf("log conversation: %w", err)
	}

	s.logger.DebugContext(ctx, "conversation logged",
		slog.String("uid", userID), slog.String("key", key))
	return nil
}

// History returns the user's full exchange list, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]*entity.ChatRecord, error) {
	records, err := s.chats.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return records, nil
}

// Titles returns the distinct conversation titles in first-seen order.
// Records stored without a title report "Untitled".
func (s *Service) Titles(ctx context.Context, userID string) ([]string, error) {
	records, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	titles := make([]string, 0, len(records))
	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = "Untitled"
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

// RecentQuestions returns up to the last ten questions, oldest first. The
// slice is empty when the user has no history.
func (s *Service) RecentQuestions(ctx context.Context, userID string) ([]string, error) {
	records, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := 0
	if len(records) > recentQuestionLimit {
		start = len(records) - recentQuestionLimit
	}
	questions := make([]string, 0, len(records)-start)
	for _, rec := range records[start:] {
		questions = append(questions, rec.Question)
	}
	return questions, nil
}

// newKey builds a chronologically sortable record key. The UUID suffix keeps
// keys unique within a second.
func newKey(now time.Time) string {
	return now.Format(timestampLayout) + "-" + uuid.NewString()[:8]
}
