package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendEndpoint = "/v3/mail/send"
	senderName   = "Chord Dictionary"
)

// SendGridMailer delivers mail through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	resetURL string
}

// NewSendGridMailer creates a mailer against the public SendGrid API.
func NewSendGridMailer(apiKey, from, resetURL string) *SendGridMailer {
	return newSendGridMailer(apiKey, "", from, resetURL)
}

// newSendGridMailer allows overriding the API host; empty means the SendGrid default.
func newSendGridMailer(apiKey, host, from, resetURL string) *SendGridMailer {
	request := sendgrid.GetRequest(apiKey, sendEndpoint, host)
	request.Method = http.MethodPost
	return &SendGridMailer{
		client:   &sendgrid.Client{Request: request},
		from:     from,
		resetURL: resetURL,
	}
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	link := ResetLink(m.resetURL, msg.Token)

	from := mail.NewEmail(senderName, m.from)
	to := mail.NewEmail("", msg.To)
	subject := "Reset your Chord Dictionary password"
	plainTextContent := fmt.Sprintf(
		"A password reset was requested for your account.\n\nOpen %s to choose a new password. The link expires at %s.\n\nIf you did not ask for this, ignore this email.",
		link, msg.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"))
	htmlContent := fmt.Sprintf(
		`<p>A password reset was requested for your account.</p><p><a href="%s">Choose a new password</a>. The link expires at %s.</p><p>If you did not ask for this, ignore this email.</p>`,
		link, msg.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"))

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	if response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid rejected reset email: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
