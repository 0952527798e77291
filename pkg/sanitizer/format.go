package sanitizer

import (
	"regexp"
	"strings"
)

var dotRegex = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address and collapses
// consecutive dots in the local part. Emails are compared and stored in
// this normalized form so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// TrimName collapses internal whitespace runs in display names and trims
// the ends. Empty results are returned as-is; the name column is nullable.
func TrimName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
