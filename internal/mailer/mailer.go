// Package mailer builds and sends contact-form email notifications.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/form"
)

// Sentinel errors distinguishing the two failure modes callers branch
// on. Everything else wraps one of these.
var (
	// ErrMisconfigured means sender, recipient, or API key is missing.
	// Notify fails with it before any transport call.
	ErrMisconfigured = errors.New("mailer: missing mail configuration")

	// ErrSendFailed means the transport rejected or failed the send.
	ErrSendFailed = errors.New("mailer: send failed")
)

// Notification is everything that goes into one outbound email.
type Notification struct {
	Submission form.Submission
	ClientID   string
	UserAgent  string
	ReceivedAt time.Time
}

// Notifier dispatches a notification for an admitted submission.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Email is a fully built outbound message handed to a Transport.
type Email struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a built email through an external provider.
type Transport interface {
	Send(ctx context.Context, email Email) error
}

// Mailer is the production Notifier: it formats the notification and
// sends it through the configured transport. No internal retries;
// transient failures surface to the caller.
type Mailer struct {
	cfg       config.MailConfig
	transport Transport
	logger    *zap.Logger
}

// New returns a Mailer. logger may be nil.
func New(cfg config.MailConfig, transport Transport, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, transport: transport, logger: logger}
}

// Configured reports whether all required mail settings are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Complete()
}

// Notify builds the subject, plain-text, and HTML bodies and sends the
// email. Message content never reaches the log, only its length.
func (m *Mailer) Notify(ctx context.Context, n Notification) error {
	if !m.cfg.Complete() {
		return ErrMisconfigured
	}

	email := Email{
		From:    m.cfg.From,
		To:      m.cfg.To,
		Subject: buildSubject(n.Submission),
		Text:    buildTextBody(n),
		HTML:    buildHTMLBody(n),
	}

	if err := m.transport.Send(ctx, email); err != nil {
		m.logger.Error("notification send failed",
			zap.String("site", n.Submission.Site),
			zap.String("client_id", n.ClientID),
			zap.Int("message_len", len(n.Submission.Message)),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	m.logger.Info("notification sent",
		zap.String("site", n.Submission.Site),
		zap.String("client_id", n.ClientID),
		zap.Int("message_len", len(n.Submission.Message)))
	return nil
}
