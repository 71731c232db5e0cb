package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/formrelay/formrelay/internal/form"
)

const noSubject = "(no subject)"

// buildSubject produces "[ContactForm][<site>] <subject>", substituting
// a placeholder when the submission carries no subject.
func buildSubject(s form.Submission) string {
	subject := s.Subject
	if subject == "" {
		subject = noSubject
	}
	return fmt.Sprintf("[ContactForm][%s] %s", s.Site, subject)
}

func subjectOrPlaceholder(s form.Submission) string {
	if s.Subject == "" {
		return noSubject
	}
	return s.Subject
}

// buildTextBody renders the plain-text notification body.
func buildTextBody(n Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact form submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", n.Submission.Name)
	fmt.Fprintf(&b, "Email: %s\n", n.Submission.Email)
	fmt.Fprintf(&b, "Subject: %s\n", subjectOrPlaceholder(n.Submission))
	fmt.Fprintf(&b, "Site: %s\n\n", n.Submission.Site)
	fmt.Fprintf(&b, "Message:\n%s\n\n", n.Submission.Message)
	fmt.Fprintf(&b, "Received: %s\n", n.ReceivedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Client: %s\n", n.ClientID)
	fmt.Fprintf(&b, "User-Agent: %s\n", n.UserAgent)
	return b.String()
}

// buildHTMLBody renders the HTML notification body. Every interpolated
// value is escaped so submitted content cannot inject markup into the
// recipient's mail client.
func buildHTMLBody(n Notification) string {
	esc := html.EscapeString
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", esc(n.Submission.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", esc(n.Submission.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", esc(subjectOrPlaceholder(n.Submission)))
	fmt.Fprintf(&b, "<p><strong>Site:</strong> %s</p>\n", esc(n.Submission.Site))
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p>\n<blockquote>%s</blockquote>\n",
		strings.ReplaceAll(esc(n.Submission.Message), "\n", "<br>\n"))
	fmt.Fprintf(&b, "<hr>\n<p><small>Received %s from %s (%s)</small></p>\n",
		esc(n.ReceivedAt.UTC().Format(time.RFC3339)), esc(n.ClientID), esc(n.UserAgent))
	return b.String()
}
