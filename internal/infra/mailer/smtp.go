package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"briefcast/internal/config"
	"briefcast/internal/resilience/retry"
)

// SMTP implements Mailer over net/smtp with STARTTLS-capable plain auth.
type SMTP struct {
	cfg         config.MailConfig
	retryConfig retry.Config
	limiter     *rate.Limiter

	// sendFn is swapped in tests; defaults to smtp.SendMail.
	sendFn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP creates an SMTP mailer. Outgoing mail is limited to 1 message per
// second with a burst of 1, matching transactional-provider etiquette.
func NewSMTP(cfg config.MailConfig) *SMTP {
	return &SMTP{
		cfg:         cfg,
		retryConfig: retry.MailConfig(),
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
		sendFn:      smtp.SendMail,
	}
}

// Send delivers one HTML email. Transient failures are retried with backoff;
// the caller decides whether a final failure is fatal (the /send-mail
// endpoint logs and still answers 200).
func (m *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limit: %w", err)
	}

	msg := m.buildMessage(to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	start := time.Now()
	err := retry.WithBackoff(ctx, m.retryConfig, func() error {
		return m.sendFn(addr, auth, m.cfg.From, []string{to}, msg)
	})
	if err != nil {
		slog.Error("email delivery failed",
			slog.String("to", to),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("send mail: %w", err)
	}

	slog.Info("email sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func (m *SMTP) buildMessage(to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// NoOp is a mailer that drops messages. Used when mail is disabled.
type NoOp struct{}

// Send logs and discards the message.
func (NoOp) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("mail disabled, dropping message",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
