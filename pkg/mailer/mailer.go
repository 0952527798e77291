package mailer

import (
	"context"
	"fmt"
	"net/mail"
)

// EmailSender sends transactional emails. Implementations must be safe for
// concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes a single outbound message.
type SendEmailParams struct {
	SendTo   string // recipient address
	Subject  string
	BodyHTML string
	Tag      string // optional provider-side tag for analytics
}

// Validate checks the parameters before handing them to a provider.
func (p SendEmailParams) Validate() error {
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidParams, p.SendTo)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
