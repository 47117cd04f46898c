package mail_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	hmail "briefcast/internal/handler/http/mail"
)

// stubMailer records sends and optionally fails every delivery.
type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func newMux(m *stubMailer) *http.ServeMux {
	mux := http.NewServeMux()
	hmail.Register(mux, m, slog.New(slog.DiscardHandler))
	return mux
}

func postSendMail(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send-mail", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSendMailOK(t *testing.T) {
	mailer := &stubMailer{}
	rec := postSendMail(t, newMux(mailer), `{"email":"dev@example.com","name":"Dev"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "New event email sent" {
		t.Errorf("message = %q", resp["message"])
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "dev@example.com" {
		t.Errorf("sent = %v", mailer.sent)
	}
}

func TestSendMailDeliveryFailureStillAnswersOK(t *testing.T) {
	mailer := &stubMailer{err: fmt.Errorf("smtp relay refused connection")}
	rec := postSendMail(t, newMux(mailer), `{"email":"dev@example.com","name":"Dev"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "New event email sent") {
		t.Errorf("body = %q, want success message", body)
	}
	if strings.Contains(body, "smtp") {
		t.Errorf("delivery error leaked into response: %q", body)
	}
}

func TestSendMailMissingEmail(t *testing.T) {
	mailer := &stubMailer{}
	rec := postSendMail(t, newMux(mailer), `{"name":"Dev"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("nothing should be sent, got %v", mailer.sent)
	}
}
