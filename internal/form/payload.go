// Package form contains the contact-form submission type, field
// validation, and the per-site allowlist.
package form

import "strings"

// Submission is a contact-form payload as received on the wire.
// All fields are optional at the JSON level; absent fields decode to "".
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Site    string `json:"site"`
	// Company is the honeypot field. It is hidden from human users by
	// the client UI; any non-empty value marks the submission as
	// automated.
	Company string `json:"company"`
}

// trimmed returns a copy with all fields whitespace-trimmed.
func (s Submission) trimmed() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
		Site:    strings.TrimSpace(s.Site),
		Company: strings.TrimSpace(s.Company),
	}
}
