package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendTransport delivers email through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
}

// NewResendTransport returns a transport authenticated with apiKey.
func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey)}
}

// Send delivers one email. The context bounds the underlying HTTP call.
func (t *ResendTransport) Send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
		Html:    email.HTML,
	}

	if _, err := t.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
