package mailer

import "fmt"

// newAccountTemplate is the HTML body for the welcome email sent after
// signup. Placeholders: recipient name, account email.
const newAccountTemplate = `<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome aboard, %s!</h2>
    <p>Your account has been created with the email address <b>%s</b>.</p>
    <p>You can now sign in, ask questions relevant to your department and
    interests, and receive a personalized daily news digest.</p>
    <p style="color: #888; font-size: 12px;">If you did not create this
    account, please ignore this message.</p>
  </body>
</html>`

// WelcomeSubject is the subject line for the welcome email.
const WelcomeSubject = "Welcome to Briefcast"

// WelcomeBody renders the welcome email body for the given recipient.
func WelcomeBody(name, email string) string {
	return fmt.Sprintf(newAccountTemplate, name, email)
}
