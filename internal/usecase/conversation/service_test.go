package conversation_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"briefcast/internal/domain/entity"
	convUC "briefcast/internal/usecase/conversation"
)

// in-memory ChatRepository stub
type stubChatRepo struct {
	records map[string]map[string]*entity.ChatRecord // userID -> key -> record
	order   []string                                 // append order of keys
	err     error
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{records: map[string]map[string]*entity.ChatRecord{}}
}

func (s *stubChatRepo) Append(_ context.Context, userID, key string, rec *entity.ChatRecord) error {
	if s.err != nil {
		return s.err
	}
	if s.records[userID] == nil {
		s.records[userID] = map[string]*entity.ChatRecord{}
	}
	s.records[userID][key] = rec
	s.order = append(s.order, key)
	return nil
}

func (s *stubChatRepo) List(_ context.Context, userID string) ([]*entity.ChatRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.ChatRecord, 0, len(s.order))
	for _, key := range s.order {
		if rec, ok := s.records[userID][key]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLogStoresRecord(t *testing.T) {
	repo := newStubChatRepo()
	svc := convUC.NewService(repo, testLogger())

	if err := svc.Log(context.Background(), "u1", "what is Go", "a language", "AI Response"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	records, err := svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Question != "what is Go" || rec.Response != "a language" || rec.Title != "AI Response" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Timestamp == "" {
		t.Error("timestamp not set")
	}
}

func TestLogKeysAreUniqueWithinASecond(t *testing.T) {
	repo := newStubChatRepo()
	svc := convUC.NewService(repo, testLogger())

	for i := 0; i < 20; i++ {
		if err := svc.Log(context.Background(), "u1", "q", "r", "AI Response"); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	seen := map[string]struct{}{}
	for _, key := range repo.order {
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}
	if len(seen) != 20 {
		t.Fatalf("want 20 distinct keys, got %d", len(seen))
	}
	for key := range seen {
		if !strings.Contains(key, "-") || len(key) <= len("2006-01-02T150405") {
			t.Errorf("key %q missing random suffix", key)
		}
	}
}

func TestLogPropagatesStoreFailure(t *testing.T) {
	repo := newStubChatRepo()
	repo.err = errors.New("store down")
	svc := convUC.NewService(repo, testLogger())

	if err := svc.Log(context.Background(), "u1", "q", "r", "t"); err == nil {
		t.Fatal("want error when store fails")
	}
}

func TestTitlesDeduplicates(t *testing.T) {
	repo := newStubChatRepo()
	svc := convUC.NewService(repo, testLogger())

	for _, title := range []string{"AI Response", "AI Response", "Digest", ""} {
		if err := svc.Log(context.Background(), "u1", "q", "r", title); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	titles, err := svc.Titles(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Titles: %v", err)
	}
	want := []string{"AI Response", "Digest", "Untitled"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRecentQuestionsReturnsLastTen(t *testing.T) {
	repo := newStubChatRepo()
	svc := convUC.NewService(repo, testLogger())

	questions := []string{
		"q01", "q02", "q03", "q04", "q05", "q06", "q07",
		"q08", "q09", "q10", "q11", "q12",
	}
	for _, q := range questions {
		if err := svc.Log(context.Background(), "u1", q, "r", "t"); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := svc.RecentQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecentQuestions: %v", err)
	}
	want := questions[2:]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
}

func TestRecentQuestionsEmptyHistory(t *testing.T) {
	svc := convUC.NewService(newStubChatRepo(), testLogger())

	got, err := svc.RecentQuestions(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("RecentQuestions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want empty slice, got %v", got)
	}
}
