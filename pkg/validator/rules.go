package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// RequiredString fails when the value is empty or whitespace-only.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

// ValidEmail fails when the value is not an addr-spec parseable address.
// net/mail accepts display names, so the parsed address must round-trip to
// the input.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// MinLenString fails when the value is shorter than min bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return len(value) >= min },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)},
	}
}

// MaxLenString fails when the value is longer than max bytes. bcrypt caps
// input at 72 bytes, so passwords are validated with this rule up front
// instead of surfacing a hashing failure later.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)},
	}
}
