package form

import "regexp"

// Code identifies a single validation failure.
type Code string

const (
	CodeInvalidJSON       Code = "invalid_json"
	CodeNameRequired      Code = "name_required"
	CodeEmailRequired     Code = "email_required"
	CodeMessageRequired   Code = "message_required"
	CodeEmailInvalid      Code = "email_invalid"
	CodeNameTooLong       Code = "name_too_long"
	CodeEmailTooLong      Code = "email_too_long"
	CodeSubjectTooLong    Code = "subject_too_long"
	CodeMessageTooLong    Code = "message_too_long"
	CodeSiteTooLong       Code = "site_too_long"
	CodeHoneypotTriggered Code = "honeypot_triggered"
)

// Field length ceilings, applied after trimming.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 254
	MaxSubjectLen = 150
	MaxMessageLen = 4000
	MaxSiteLen    = 50
)

// emailPattern is deliberately loose: no whitespace, exactly one "@",
// at least one "." in the domain part. Deliverability is the mail
// provider's problem, not ours.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate trims every field of raw and collects all applicable
// violations in discovery order. The returned Submission always holds
// the trimmed values, but callers must not act on it when codes is
// non-empty. Validate has no side effects.
func Validate(raw Submission) (codes []Code, cleaned Submission) {
	cleaned = raw.trimmed()

	if cleaned.Name == "" {
		codes = append(codes, CodeNameRequired)
	}
	if cleaned.Email == "" {
		codes = append(codes, CodeEmailRequired)
	} else if !emailPattern.MatchString(cleaned.Email) {
		// Only flag format when the field is present, so a missing
		// email reports one code rather than two.
		codes = append(codes, CodeEmailInvalid)
	}
	if cleaned.Message == "" {
		codes = append(codes, CodeMessageRequired)
	}

	if len(cleaned.Name) > MaxNameLen {
		codes = append(codes, CodeNameTooLong)
	}
	if len(cleaned.Email) > MaxEmailLen {
		codes = append(codes, CodeEmailTooLong)
	}
	if len(cleaned.Subject) > MaxSubjectLen {
		codes = append(codes, CodeSubjectTooLong)
	}
	if len(cleaned.Message) > MaxMessageLen {
		codes = append(codes, CodeMessageTooLong)
	}
	if len(cleaned.Site) > MaxSiteLen {
		codes = append(codes, CodeSiteTooLong)
	}

	if cleaned.Company != "" {
		codes = append(codes, CodeHoneypotTriggered)
	}

	return codes, cleaned
}

// Strings converts validation codes to plain strings for JSON responses.
func Strings(codes []Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
