// Package mailer sends transactional email. The SMTP implementation applies
// client-side rate limiting and retries transient delivery failures; a no-op
// implementation is used when mail is disabled.
package mailer

import "context"

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
