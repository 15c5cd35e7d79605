package util

import "regexp"

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reToken = regexp.MustCompile(`(?i)(api|secret|token|key)[=:]\s*[A-Za-z0-9_-]{8,}`)
	rePhone = regexp.MustCompile(`\b0\d{1,2}-?\d{3}-?\d{4}\b`)
)

// RedactPII masks emails, phone numbers and credentials before values
// reach the application log.
func RedactPII(s string) string {
	s = reEmail.ReplaceAllString(s, "[redacted-email]")
	s = rePhone.ReplaceAllString(s, "[redacted-phone]")
	s = reToken.ReplaceAllString(s, "$1=[redacted]")
	return s
}
