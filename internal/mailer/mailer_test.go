package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/form"
)

type stubTransport struct {
	calls int
	last  Email
	err   error
}

func (s *stubTransport) Send(ctx context.Context, email Email) error {
	s.calls++
	s.last = email
	return s.err
}

func completeMailConfig() config.MailConfig {
	return config.MailConfig{
		APIKey: "re_test_123",
		From:   "forms@example.com",
		To:     "inbox@example.com",
	}
}

func testNotification() Notification {
	return Notification{
		Submission: form.Submission{
			Name:    "Jane",
			Email:   "jane@example.com",
			Subject: "Hello",
			Message: "Test",
			Site:    "siteA",
		},
		ClientID:   "203.0.113.7",
		UserAgent:  "curl/8.0",
		ReceivedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestNotifySendsBuiltEmail(t *testing.T) {
	transport := &stubTransport{}
	m := New(completeMailConfig(), transport, nil)

	err := m.Notify(context.Background(), testNotification())
	require.NoError(t, err)
	require.Equal(t, 1, transport.calls)

	assert.Equal(t, "forms@example.com", transport.last.From)
	assert.Equal(t, "inbox@example.com", transport.last.To)
	assert.Equal(t, "[ContactForm][siteA] Hello", transport.last.Subject)
	assert.Contains(t, transport.last.Text, "Name: Jane")
	assert.Contains(t, transport.last.Text, "2025-06-01T12:30:00Z")
	assert.Contains(t, transport.last.Text, "203.0.113.7")
	assert.Contains(t, transport.last.Text, "curl/8.0")
	assert.Contains(t, transport.last.HTML, "jane@example.com")
}

func TestNotifyMisconfiguredSkipsTransport(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.MailConfig)
	}{
		{"missing api key", func(c *config.MailConfig) { c.APIKey = "" }},
		{"missing from", func(c *config.MailConfig) { c.From = "" }},
		{"missing to", func(c *config.MailConfig) { c.To = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := completeMailConfig()
			tt.mutate(&cfg)
			transport := &stubTransport{}
			m := New(cfg, transport, nil)

			err := m.Notify(context.Background(), testNotification())
			require.ErrorIs(t, err, ErrMisconfigured)
			assert.Equal(t, 0, transport.calls, "transport must not be invoked")
			assert.False(t, m.Configured())
		})
	}
}

func TestNotifyWrapsTransportFailure(t *testing.T) {
	transport := &stubTransport{err: errors.New("upstream 503")}
	m := New(completeMailConfig(), transport, nil)

	err := m.Notify(context.Background(), testNotification())
	require.ErrorIs(t, err, ErrSendFailed)
	assert.NotErrorIs(t, err, ErrMisconfigured)
	assert.Equal(t, 1, transport.calls)
}

func TestSubjectPlaceholder(t *testing.T) {
	n := testNotification()
	n.Submission.Subject = ""
	transport := &stubTransport{}
	m := New(completeMailConfig(), transport, nil)

	require.NoError(t, m.Notify(context.Background(), n))
	assert.Equal(t, "[ContactForm][siteA] (no subject)", transport.last.Subject)
	assert.Contains(t, transport.last.Text, "Subject: (no subject)")
	assert.Contains(t, transport.last.HTML, "(no subject)")
}

func TestHTMLBodyEscapesMarkup(t *testing.T) {
	n := testNotification()
	n.Submission.Name = `Jane <script>alert("x")</script>`
	n.Submission.Message = "<b>bold</b> & <script>evil()</script>"

	htmlBody := buildHTMLBody(n)
	assert.NotContains(t, htmlBody, "<script>")
	assert.Contains(t, htmlBody, "&lt;script&gt;")
	assert.Contains(t, htmlBody, "&amp;")
}

func TestHTMLBodyPreservesMessageLineBreaks(t *testing.T) {
	n := testNotification()
	n.Submission.Message = "line one\nline two"

	htmlBody := buildHTMLBody(n)
	assert.Contains(t, htmlBody, "line one<br>\nline two")
}

func TestTextBodyContainsAllFields(t *testing.T) {
	n := testNotification()
	text := buildTextBody(n)

	for _, want := range []string{
		"Name: Jane",
		"Email: jane@example.com",
		"Subject: Hello",
		"Site: siteA",
		"Message:\nTest",
		"Received: 2025-06-01T12:30:00Z",
		"Client: 203.0.113.7",
		"User-Agent: curl/8.0",
	} {
		assert.True(t, strings.Contains(text, want), "text body missing %q", want)
	}
}
