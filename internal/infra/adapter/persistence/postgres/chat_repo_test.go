package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"briefcast/internal/domain/entity"
	pgRepo "briefcast/internal/infra/adapter/persistence/postgres"
)

func TestAppendInsertsRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO chat_records").
		WithArgs("u1", "2025-06-15T120000-abcd1234", "q", "r", "AI Response", "2025-06-15T120000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pgRepo.NewChatRepo(db)
	err = repo.Append(context.Background(), "u1", "2025-06-15T120000-abcd1234", &entity.ChatRecord{
		Question:  "q",
		Response:  "r",
		Title:     "AI Response",
		Timestamp: "2025-06-15T120000",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListReturnsRecordsInKeyOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"question", "response", "title", "ts"}).
		AddRow("first", "r1", "AI Response", "2025-06-14T100000").
		AddRow("second", "r2", "AI Response", "2025-06-15T100000")
	mock.ExpectQuery("SELECT question, response, title, ts").
		WithArgs("u1").
		WillReturnRows(rows)

	repo := pgRepo.NewChatRepo(db)
	records, err := repo.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].Question != "first" || records[1].Question != "second" {
		t.Errorf("records = %+v", records)
	}
}
